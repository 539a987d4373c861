package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/middleware"
)

func writeAudit(
	c *gin.Context,
	d *audit.Dispatcher,
	action string,
	entity string,
	entityID uuid.UUID,
	meta any,
) {
	ev := audit.Event{
		Action:   action,
		Entity:   entity,
		EntityID: &entityID,
		Metadata: meta,
	}
	if actor, ok := middleware.UserID(c); ok {
		ev.ActorID = &actor
	}
	d.Dispatch(ev)
}
