package api

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(rt router) *routeHandlers {
	return &routeHandlers{
		blogPostHandler:    newBlogPostHandler(rt.posts, rt.notifier),
		diagnosticsHandler: newDiagnosticsHandler(rt.probe, rt.settings.DatabaseURLSet),
	}
}
