package errors

// User-friendly error messages
const (
	MsgListingNotFound    = "That listing could not be found."
	MsgServiceUnavailable = "We're unable to retrieve listings right now. Please try again in a few minutes."
	MsgEmptySlideshow     = "There is nothing to show yet. Check the playlist or the listing feed."
	MsgLoadFailed         = "The slideshow could not be loaded. Please refresh to try again."
	MsgRateLimited        = "Too many requests! Please wait a moment and try again."
	MsgInvalidParameters  = "The provided parameters are invalid. Please check your input and try again."
	MsgInternalError      = "Something went wrong on our end. Please try again later."
)
