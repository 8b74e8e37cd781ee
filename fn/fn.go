package fn

// Iden is the identity function: it simply returns its argument. Used as a
// no-op continuation when eliminating an Option whose Some case needs no
// transformation.
func Iden[A any](a A) A {
	return a
}
