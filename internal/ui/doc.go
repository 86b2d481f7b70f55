// Package ui contains the Bubble Tea program for the restaurant client.
// The Model type focuses on message orchestration, while dedicated helpers
// own navigation, input, rendering, and per-view state updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes every message through a typed handler registry so each
//     tea.Msg is handled by a focused function (key presses, backend results,
//     timers). Messages without a handler, such as cursor blinks, are
//     forwarded to the form of the view on screen.
//   - Navigation helpers (internal/ui/navigation.go) manage the route history
//     and mount views. Menu filtering lives in internal/ui/input.go, the dish
//     view in dishdetail.go and the feedback form in contact.go.
//
// State ownership:
//   - Route history, the menu list, the dish detail and the contact state
//     live in internal/ui/state and contain no Bubble Tea types.
//   - Forms are internal/form values; validation messages are recomputed on
//     every edit.
//   - Backend calls run through the internal/ui/command bus, which applies a
//     per-call deadline and cancels everything still running on quit.
//
// Mounting:
//   - Each time a view is shown it receives a fresh mount id. Fetch results
//     and timers carry the id of the view that asked for them and are dropped
//     once that view has been replaced.
//   - Within a mounted dish view every fetch has a sequence number; only the
//     latest one may update the screen.
package ui
