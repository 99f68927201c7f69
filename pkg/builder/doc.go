// Package builder compiles an immutable command tree into a programmatic,
// chainable surface: one named, type-checked callable member per tree node.
//
// Compile walks the tree once and eagerly builds the full child table for
// every group. Group invocations (Cursor.Descend) extend the chain; a leaf
// invocation (Cursor.Invoke) terminates it and serializes the accumulated
// ancestry into an argv token sequence:
//
//	root, _ := builder.Compile(tree)
//	cur, _ := root.Invoke(builder.Args{"metadata": "local"})
//	tokens, _ := cur.Invoke("run", builder.Args{
//	    "tags":        []string{"abc", "def"},
//	    "max-workers": 5,
//	})
//	// ["--metadata", "local", "run", "--tags", "abc", "--tags", "def",
//	//  "--max-workers", "5"]
//
// Leaves marked as accepting root-level augmentation bind against the
// root's lazily computed parameter set as well; that set is computed once
// per Root and never recomputed.
package builder
