// Package harness runs translation scenarios for jmlgen.
//
// A scenario is a YAML file naming a Contract-LIB document (a file
// relative to the scenario, or inline text) and assertions over its
// translation:
//
//	name: linked_list_add
//	description: "add appends to the content sequence"
//	source: ../sources/linked_list.smt2
//	assertions:
//	  - type: entity_exists
//	    entity: LinkedList
//	    kind: interface
//	  - type: method_params
//	    entity: LinkedList
//	    method: add
//	    names: [v]
//
// Assertion types:
//   - entity_exists: the class was generated, optionally of a given kind
//   - ghost_fields: ghost-field names, in declaration order
//   - method_params: declared parameter names, in order
//   - contract_count: number of contract blocks on a method
//   - output_contains: substring of the rendered output
//   - error_kind: translation fails with the given kind and optional code
//   - diagnostic: a diagnostic with the given code (and symbol) was reported
//
// Each scenario runs on a fresh engine with a fixed run ID, so the
// snapshot compared by RunWithGolden is byte-identical between runs.
package harness
