package replay

import (
	"github.com/sarchlab/csim/datarecording"
)

// accessEntry is the database row recorded for one counted access.
type accessEntry struct {
	Seq      uint64
	Kind     string
	Address  uint64
	Size     int
	SetIndex uint64
	Tag      uint64
	Outcome  string
}

// A RecorderHook stores every counted access in a data recorder, in the
// trace_accesses table.
type RecorderHook struct {
	recorder datarecording.DataRecorder
}

// NewRecorderHook creates a RecorderHook and its backing table.
func NewRecorderHook(recorder datarecording.DataRecorder) *RecorderHook {
	h := &RecorderHook{recorder: recorder}
	h.recorder.CreateTable("trace_accesses", accessEntry{})

	return h
}

// Func records the access.
func (h *RecorderHook) Func(ctx HookCtx) {
	if ctx.Pos != HookPosAccess {
		return
	}

	access := ctx.Item.(Access)

	h.recorder.InsertData("trace_accesses", accessEntry{
		Seq:      access.Seq,
		Kind:     access.Kind.String(),
		Address:  access.Address,
		Size:     access.Size,
		SetIndex: access.SetIndex,
		Tag:      access.Tag,
		Outcome:  access.Outcome.String(),
	})
}
