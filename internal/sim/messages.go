package sim

import "breach-lab/internal/shared/input"

// Messages are queued by the shell and drained at the top of every tick, so
// no external caller ever mutates match state mid-pass.

type Msg interface{ isMsg() }

type MsgInput struct{ Input input.State }

func (MsgInput) isMsg() {}

// MsgSelectLevel picks a datacenter while in the map-select state.
type MsgSelectLevel struct{ ID string }

func (MsgSelectLevel) isMsg() {}

// MsgStart begins the match from the menu state.
type MsgStart struct{}

func (MsgStart) isMsg() {}

// MsgChoose answers an open level-up or evolution offer.
type MsgChoose struct{ Index int }

func (MsgChoose) isMsg() {}

type MsgTogglePause struct{}

func (MsgTogglePause) isMsg() {}

// MsgRestart leaves a terminal or paused match and returns to map selection.
type MsgRestart struct{}

func (MsgRestart) isMsg() {}
