// Package document reads and writes graph documents: HCL files listing the
// nodes of a graph, their stored slot values and the connections between
// them. Loading replays a document into an engine through its public
// mutation surface, so an attached message sink sees the graph take shape
// exactly as it would from live edits.
package document
