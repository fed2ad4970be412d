package view

// FlashKind selects the toast style. Kinds map one-to-one onto the
// flash-{kind} CSS classes in the layout.
type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot toast. It travels through the signed flash cookie,
// shows on exactly one rendered page, and a newer flash always replaces a
// pending one.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}
