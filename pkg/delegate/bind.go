package delegate

// Bind registers method bound to obj. Method expressions such as
// (*Player).OnHit have the required shape. The slot can be removed with
// Unbind using the same pair.
func Bind[O, A any](d *Delegate[A], obj *O, method func(*O, A)) ID {
	if obj == nil || method == nil {
		return InvalidID
	}
	return d.add(KindBoundMethod, &methodTarget[O, A]{
		object: obj,
		method: method,
		code:   codePointer(method),
	})
}

// Unbind removes the first enabled slot created by Bind with the same object
// and method.
func Unbind[O, A any](d *Delegate[A], obj *O, method func(*O, A)) bool {
	if obj == nil || method == nil {
		return false
	}
	return d.removeAt(d.find(identity{object: obj, code: codePointer(method)}))
}
