package osd

// Handle identifies an engine-managed resource. Handles are small positive
// integers assigned monotonically per resource kind, starting at 1, and are
// never reused while the process lives. Zero and negative values never
// address a live resource.
type Handle = int32

// InvalidHandle is returned by operations that fail to produce a resource
// (unknown input handle, unparsable font, singular transform).
const InvalidHandle Handle = -1
