/*
Package domain contains the data model of a node-graph workflow document.

It defines the document itself, its node records and the values held by node
input slots. The package is kept pure and free of I/O, following the same
hexagonal layout as the rest of the module.

# Key Entities

  - Workflow: An insertion-ordered mapping from node identifier to Node.
  - Node: A record with a class type and named input slots.
  - Value: The content of an input slot, either a Literal or a Link.
  - Link: A reference to a numbered output of another node, written as [node_id, output_index].
*/
package domain
