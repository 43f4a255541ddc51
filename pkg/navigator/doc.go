// Package navigator implements sectioned directional focus navigation.
//
// # Overview
//
// A [Navigator] owns a set of named [Section] values, tracks which node was
// last focused in each of them and turns directional requests into focus
// changes. Geometry is delegated to [spatial.Navigate]; everything the
// navigator needs from the outside world (bounding boxes, selector matching,
// applying focus) comes through the [Host] interface.
//
// # Sections
//
// A section groups the nodes matched by its [Selector]. Sections are
// registered with [Navigator.AddSection] and configured with a sparse
// [SectionConfig] whose unset fields fall back to the navigator-wide
// [Config]:
//
//	nav := navigator.New(host)
//	id, err := nav.AddSection("menu", navigator.SectionConfig{
//	    Selector: navigator.ByPattern(".menu-item"),
//	    Priority: navigator.Ptr(navigator.PriorityLastFocused),
//	})
//
// # Moving
//
// [Navigator.Move] searches for a destination according to the focused
// section's restrict policy, applies leave-for overrides and the destination
// section's entry policy, then focuses the result. A move that finds nothing
// emits [EventNavigateFailed] and returns false.
//
// # Lifecycle notifications
//
// Every focus change runs through cancelable notifications delivered by the
// navigator's [Dispatcher]. A listener returning false vetoes the step:
//
//	nav.Events().On(navigator.EventWillUnfocus, func(ev navigator.Event) bool {
//	    return !editing
//	})
//
// Listeners may call back into the navigator. A focus request made while a
// focus change is already in progress is applied silently, without
// notifications.
//
// The navigator is not safe for concurrent use; callers serialise access.
package navigator
