// Package typemap maps the primitive parameter kinds found in surface
// metadata to the semantic value types used for validation.
//
// The table is fixed: every kind a surface may declare must be registered
// here, and referencing an unregistered kind aborts compilation of the
// whole tree (it is a configuration error, not a caller error). Semantic
// types are expressed in the go-cty type vocabulary, which supplies stable
// diagnostic names and container element typing.
//
// Usage:
//
//	st, err := typemap.Resolve(typemap.KindInt)
//	if err != nil {
//	    return err // UNKNOWN_TYPE_KIND
//	}
//	tokens, err := st.Tokens(5) // ["5"]
package typemap
