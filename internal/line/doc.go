// Package line computes the decorative line that threads through the
// portfolio page as the visitor scrolls.
//
// Page elements report their positions into a [Registry]. [Build] stitches
// the configured [Segment] list into one polyline scaled to the viewport,
// [MapScroll] turns a scroll offset into draw progress and a tip position,
// and [Reveal] locates that progress on the path. A [Tracker] keeps a built
// path current, rebuilding at most once per frame.
package line
