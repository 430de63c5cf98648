package usecase

// LivePusher is the outbound half of the presence registry as seen by the
// delivery coordinator. PushToIdentity reports false when the identity has
// no live session or the write failed; both mean "offline", never an
// error, and never abort the durable half of an operation.
type LivePusher interface {
	PushToIdentity(identity string, payload []byte) bool
}
