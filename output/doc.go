// Package output opens video output sessions.
//
// A Session binds one caller-owned window to a GPU backend and draws
// decoded frames into it:
//
//	import _ "github.com/gogpu/vo/backend/vulkan"
//
//	s, err := output.Open(output.Config{
//	    Window:   platform.Window{Kind: platform.X11, Handle: xid},
//	    Pipeline: pipeline.DefaultOptions(),
//	})
//	if err != nil {
//	    return err // session-fatal, nothing left to clean up
//	}
//	defer s.Close()
//
//	s.Resize(w, h)
//	for f := range frames {
//	    s.Draw(f, subtitles)
//	}
//
// Open fails only with session-fatal errors. Once open, per-frame
// problems are logged and reported through Draw's result and Stats.
//
// A Session is driven from one goroutine; Close may be called from any.
package output
