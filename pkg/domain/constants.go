package domain

// Legacy GroundingDino class types recognized by the migration.
const (
	ClassGroundingDinoModelLoader = "GroundingDinoModelLoader"
	ClassGroundingDinoDetect      = "GroundingDinoDetect"
	ClassGroundDinoTextToMask     = "GroundDinoTextToMask"
	ClassGroundingDinoSAMSegment  = "GroundingDinoSAMSegment"
)

// Florence-2 and SAM2 class types emitted by the migration.
const (
	ClassFlorence2ModelLoader   = "Florence2ModelLoader"
	ClassFlorence2Run           = "Florence2Run"
	ClassFlorence2toCoordinates = "Florence2toCoordinates"
	ClassSAM2                   = "SAM2"
)

// Input slot names read or written by the migration.
const (
	SlotPrompt     = "prompt"
	SlotTextPrompt = "text_prompt"
	SlotDinoModel  = "dino_model"
	SlotModel      = "model"
	SlotImage      = "image"
	SlotSAMModel   = "sam_model"
	SlotTextInput  = "text_input"

	SlotFlorenceResult    = "florence2_result"
	SlotIndex             = "index"
	SlotCoordinates       = "coordinates"
	SlotIndividualObjects = "individual_objects"
)

// Role suffixes for identifiers derived during segmentation expansion.
const (
	RoleFlorence = "florence"
	RoleCoords   = "coords"
)

// DerivedID builds the identifier of an expansion stage: "<id>_<role>".
func DerivedID(id, role string) string {
	return id + "_" + role
}
