package blocks

// Builtin returns a registry holding every block that ships with panelkit.
func Builtin() *Registry {
	r := NewRegistry()
	r.MustRegister(ResizableLayout02())
	r.MustRegister(ResizableLayout03())
	r.MustRegister(ResizableLayout06())
	return r
}
