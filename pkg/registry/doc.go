// Package registry provides a generic, type-safe, concurrency-safe registry
// keyed by any comparable type. The delegate package uses it to share one id
// counter per call signature, keyed by reflect.Type.
package registry
