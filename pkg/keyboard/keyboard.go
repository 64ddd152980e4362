// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package keyboard

import (
	"errors"
)

var (
	ErrRequestCancelled = errors.New("key request cancelled")
	ErrRequestPending   = errors.New("key request still pending")
)

type Key uint8

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF

	NumKeys = 16
)

// Request is a one-shot future for "the next key pressed". It is pending
// until resolved with a key or cancelled by its owner; both end states are
// terminal. Resolving twice, or resolving after cancellation, is a contract
// violation on the keyboard side and panics.
type Request struct {
	result    Key
	resolved  bool
	cancelled bool
}

func (r *Request) Done() bool {
	return r.resolved
}

func (r *Request) Cancelled() bool {
	return r.cancelled
}

// Cancels the request if it is still pending and reports whether this call
// cancelled it. Cancelling one request never affects any other request.
func (r *Request) Cancel() bool {
	if !r.cancelled && !r.resolved {
		r.cancelled = true
		return true
	}

	return false
}

func (r *Request) Result() (Key, error) {
	if r.cancelled {
		return 0, ErrRequestCancelled
	}

	if !r.resolved {
		return 0, ErrRequestPending
	}

	return r.result, nil
}

func (r *Request) resolve(key Key) {
	if r.cancelled || r.resolved {
		panic("resolving a completed key request")
	}

	r.result = key
	r.resolved = true
}

// Keyboard tracks the pressed state of the 16-key hex pad and the
// outstanding next-key-pressed requests.
type Keyboard struct {
	pressed       [NumKeys]bool
	notifyPressed []*Request
}

func New() *Keyboard {
	return &Keyboard{}
}

func (k *Keyboard) Len() int {
	return NumKeys
}

func (k *Keyboard) Pressed(key Key) bool {
	return k.pressed[key]
}

// Updates the pressed state of a key. Only a released-to-pressed transition
// resolves outstanding requests: every live request resolves with this key
// and the queue is drained. Re-asserting a held key updates state only.
func (k *Keyboard) Set(key Key, value bool) {
	transition := value && !k.pressed[key]
	k.pressed[key] = value

	if !transition {
		return
	}

	for _, request := range k.notifyPressed {
		if !request.Cancelled() {
			request.resolve(key)
		}
	}

	k.notifyPressed = nil
}

// Registers a one-shot wait for the next key press
func (k *Keyboard) NextKeyPressed() *Request {
	request := &Request{}
	k.notifyPressed = append(k.notifyPressed, request)
	return request
}
