package apierrors

// Error message ids.
const (
	MsgUnauthorized       = "unauthorized"
	MsgInvalidToken       = "invalidToken"
	MsgForbiddenPost      = "forbiddenPost"
	MsgTaskNotFound       = "taskNotFound"
	MsgTaskNotFoundWithID = "taskNotFoundWithID"
	MsgPostNotFound       = "postNotFound"
	MsgCommentNotFound    = "commentNotFound"
	MsgValidationFailed   = "validationFailed"
	MsgInvalidJSON        = "invalidJSON"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidPostID      = "invalidPostID"
	MsgRouteNotFound      = "routeNotFound"
	MsgInternalError      = "internalError"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailListTask       = "failListTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailReorderTasks   = "failReorderTasks"
	MsgFailCreatePost     = "failCreatePost"
	MsgFailUpdatePost     = "failUpdatePost"
	MsgFailDeletePost     = "failDeletePost"
	MsgFailListFeed       = "failListFeed"
)

// Field error message ids. Templates receive Field and Param.
const (
	MsgFieldRequired    = "fieldRequired"
	MsgFieldMin         = "fieldMin"
	MsgFieldMax         = "fieldMax"
	MsgFieldMinValue    = "fieldMinValue"
	MsgFieldMaxValue    = "fieldMaxValue"
	MsgFieldOneOf       = "fieldOneOf"
	MsgFieldMaxItems    = "fieldMaxItems"
	MsgFieldMinItems    = "fieldMinItems"
	MsgFieldUnique      = "fieldUnique"
	MsgFieldFutureDate  = "fieldFutureDate"
	MsgFieldInvalidDate = "fieldInvalidDate"
	MsgFieldInvalid     = "fieldInvalid"
	MsgFieldNoUpdate    = "fieldNoUpdate"
)

// Success message ids.
const (
	MsgTaskCreated          = "taskCreated"
	MsgTaskUpdated          = "taskUpdated"
	MsgTaskDeleted          = "taskDeleted"
	MsgTaskFetched          = "taskFetched"
	MsgTasksFetched         = "tasksFetched"
	MsgTaskPositionsUpdated = "taskPositionsUpdated"
	MsgPostCreated          = "postCreated"
	MsgPostUpdated          = "postUpdated"
	MsgPostDeleted          = "postDeleted"
	MsgPostFetched          = "postFetched"
	MsgFeedFetched          = "feedFetched"
	MsgCommentAdded         = "commentAdded"
	MsgPostLikeToggled      = "postLikeToggled"
	MsgCommentLikeToggled   = "commentLikeToggled"
)
