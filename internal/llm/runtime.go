package llm

// RuntimeBuilt reports whether this binary links the llama runtime.
func RuntimeBuilt() bool { return llamaBuilt }
