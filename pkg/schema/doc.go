// Package schema declares data contracts for the modes of a machine.
//
// A Schema maps field names to Types. Types are defined over the categories of
// package kind, so a contract describes what the comparator and the view
// layer see (string, number, boolean, array, object) rather than concrete Go
// types. Struct data is checked through its field view (see domain.Fields).
//
//	contract := schema.Schema{
//	    "cursor": schema.Int(),
//	    "hand":   schema.Slice(schema.Object()),
//	}
//
//	if err := schema.Validate(contract, fields); err != nil {
//	    // err is an *AggregateError listing every failing field
//	}
//
// Schemas can also be parsed from type strings ("int", "[string]", ...).
package schema
