// Package llm hands a validated model path to the inference runtime.
//
// Build tags:
//
//   - default: adapter_llama_stub.go, which reports the runtime as
//     unavailable so default builds stay CGO-free.
//   - llama: adapter_llama.go and llama_cgo.go, backed by go-llama.cpp.
//
// Nothing here looks at the weights format or runs generation; the runtime
// owns both.
package llm
