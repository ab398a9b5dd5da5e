/*
Package folio serves a single-page personal portfolio whose centerpiece is a
project carousel.

The carousel is a small state machine: it autoplays on a fixed interval,
pauses while the pointer hovers it, accepts arrow, dot and keyboard
navigation, and animates each handoff with a cancellable transition. Every
visitor session gets its own controller; state changes are streamed to
browsers over SSE or WebSocket and to other replicas through Redis.

# Usage

	site, err := folio.New(ctx, folio.WithSlidesDir("./slides"))
	if err != nil {
		log.Fatal(err)
	}
	defer site.Close()

	h, err := site.Handler()
	if err != nil {
		log.Fatal(err)
	}
	go site.Run(ctx) // reap idle sessions
	log.Fatal(http.ListenAndServe(":8080", h))

The same Site also backs the MCP server (Site.MCP) and the terminal player
in cmd/folio.
*/
package folio
