package migrate

// LoaderSettings configures the Florence2ModelLoader replacing a
// GroundingDinoModelLoader.
type LoaderSettings struct {
	Model     string `mapstructure:"model" yaml:"model"`
	Precision string `mapstructure:"precision" yaml:"precision"`
	Attention string `mapstructure:"attention" yaml:"attention"`
}

// RunSettings configures every emitted Florence2Run node.
type RunSettings struct {
	Task             string `mapstructure:"task" yaml:"task"`
	FillMask         bool   `mapstructure:"fill_mask" yaml:"fill_mask"`
	MaxNewTokens     int    `mapstructure:"max_new_tokens" yaml:"max_new_tokens"`
	NumBeams         int    `mapstructure:"num_beams" yaml:"num_beams"`
	DoSample         bool   `mapstructure:"do_sample" yaml:"do_sample"`
	OutputMaskSelect string `mapstructure:"output_mask_select" yaml:"output_mask_select"`
	Seed             int    `mapstructure:"seed" yaml:"seed"`
	KeepModelLoaded  bool   `mapstructure:"keep_model_loaded" yaml:"keep_model_loaded"`
}

// SegmentSettings configures the coordinate and SAM2 stages of a
// segmentation expansion.
type SegmentSettings struct {
	Index             string `mapstructure:"index" yaml:"index"`
	IndividualObjects bool   `mapstructure:"individual_objects" yaml:"individual_objects"`
}

// Settings groups the constants written into replacement nodes.
type Settings struct {
	Loader  LoaderSettings  `mapstructure:"loader" yaml:"loader"`
	Run     RunSettings     `mapstructure:"run" yaml:"run"`
	Segment SegmentSettings `mapstructure:"segment" yaml:"segment"`
}

// DefaultSeed is the fixed sampling seed of every Florence2Run node.
const DefaultSeed = 42

// DefaultSettings returns the stock Florence-2 configuration.
func DefaultSettings() Settings {
	return Settings{
		Loader: LoaderSettings{
			Model:     "microsoft/florence-2-large",
			Precision: "fp16",
			Attention: "sdpa",
		},
		Run: RunSettings{
			Task:             "object_detection",
			FillMask:         true,
			MaxNewTokens:     1024,
			NumBeams:         3,
			DoSample:         true,
			OutputMaskSelect: "",
			Seed:             DefaultSeed,
			KeepModelLoaded:  true,
		},
		Segment: SegmentSettings{
			Index:             "all",
			IndividualObjects: true,
		},
	}
}
