// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cursorplane draws resolved cursors into a gogpu window.
//
// The data flow is:
//
//	cursor.Manager (resolve) -> pixbuf.Buffer (CPU) -> GPU Texture -> Window
//
// # Usage
//
//	plane := cursorplane.New(manager)
//	defer plane.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    manager.Update(elapsedMs)
//	    rc := manager.RenderCursor(scale)
//	    err := plane.Draw(dc.AsTextureDrawer(), rc, pointerX, pointerY)
//	    if errors.Is(err, cursorplane.ErrSurfaceCursor) {
//	        // composite the client surface instead
//	    }
//	})
//
// # Thread Safety
//
// Plane is NOT safe for concurrent use. It belongs to the render loop, like
// the Manager it draws for.
//
// # Integration Without Circular Imports
//
// Only gpucontext interfaces are used: TextureDrawer to draw and
// TextureCreator to upload. The package never imports gogpu.
package cursorplane
