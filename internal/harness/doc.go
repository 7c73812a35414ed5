// Package harness runs conformance scenarios against the exchange file
// pipeline: parse, serialize, count and verify.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: wall_roundtrip
//	description: "The canonical wall file survives a round trip"
//	input:
//	  path: ../fixtures/wall.ifc   # relative to the scenario file
//	strict: false
//	expect:
//	  roundtrip: true
//	  verify:
//	    ok: true
//	  counts:
//	    Wall: 1
//	    LocalPlacement: 4
//
// The input may be given inline with text instead of path. A scenario
// whose input must not parse sets expect.parse_error to a fragment of the
// expected message.
//
// # Expectations
//
//   - roundtrip: serializing the parsed file reproduces the input exactly
//   - verify: the reference check passes, or fails with the given code,
//     record and field
//   - counts: records per type name; types not listed are not checked
//   - parse_error: parsing fails and the message contains the fragment
//
// # Golden Files
//
// RunWithGolden compares the serialized file with
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
