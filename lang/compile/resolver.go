package compile

import "github.com/vincenthz/werbolg/lang/ir"

// moduleResolver holds the use-list registered for one namespace, used
// to turn a (possibly unqualified) ir.Path written in that namespace's
// functions into one or more candidate absolute paths to try against
// the global bindings.
type moduleResolver struct {
	ns   ir.Namespace
	uses []ir.Use
}

// Candidates returns, in priority order, the absolute paths that path
// could denote from this namespace: for an unqualified (single-segment)
// path, every matching use-alias, then the current namespace, then the
// root namespace (an explicit root binding, per spec.md's namespace
// isolation property); for a qualified (multi-segment) path, its
// segments are taken as an absolute namespace chain directly.
func (r *moduleResolver) Candidates(path ir.Path) []ir.AbsPath {
	if len(path.Segments) == 1 {
		ident := path.Segments[0]
		var out []ir.AbsPath
		for _, u := range r.uses {
			segs := u.Path.Segments
			if len(segs) > 0 && segs[len(segs)-1] == ident {
				out = append(out, ir.NewAbsPath(ir.NewNamespace(segs[:len(segs)-1]...), ident))
			}
		}
		out = append(out, ir.NewAbsPath(r.ns, ident))
		out = append(out, ir.NewAbsPath(ir.RootNamespace(), ident))
		return out
	}
	segs := path.Segments
	return []ir.AbsPath{ir.NewAbsPath(ir.NewNamespace(segs[:len(segs)-1]...), segs[len(segs)-1])}
}
