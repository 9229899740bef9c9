// Package dsl provides the constructors for building schema trees: one
// function per schema kind (String, Number, Bool, Null, Any, Literal, Enum,
// Object, Array, Record, Union, and the Coerced* variants), chainable
// refinements on the primitive builders, and the AnyAdapter type erasure that
// lets heterogeneous schemas compose inside objects, arrays, records, and
// unions.
//
// Builders may be configured freely before a schema is first used for
// validation; after that the tree must be treated as immutable.
package dsl
