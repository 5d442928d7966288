// Package schema defines the persisted form of a circuit and the codecs
// between that form and the live object graph.
//
// A Document is a flat description: components carry their kind, position and
// latched state, connectors reference components and ports by id. Loaders,
// loggers and the loaded bodies of sub-circuits are runtime concerns and are
// never persisted; decoding re-attaches them through options.
//
// Both JSON and YAML renderings share the same Document, so a circuit saved
// by one store can be read back by any other.
package schema
