package handlers

import (
	"strconv"

	"hospital-services/internal/remote"
	"hospital-services/internal/utils"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses the numeric id path parameter. Sends a 400 and returns
// false when it is not a valid identifier.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// respondReferenceFailure translates a failed reference validation to the
// wire. A reference that does not resolve is the caller's fault (400,
// "Invalid <reference>"); an owning service that cannot be reached is a
// dependency failure (503, "<service> service unreachable").
func respondReferenceFailure(c *gin.Context, res remote.Result) {
	if res.Verdict == remote.Unreachable {
		utils.ServiceUnavailable(c, res.Service+" service unreachable")
		return
	}
	utils.BadRequest(c, "Invalid "+res.Name)
}
