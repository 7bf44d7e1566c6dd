package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	assessmentHTTP "crashify360/internal/assessment/delivery/http"
	"crashify360/internal/middleware"
)

// setupAssessmentDomain wires the assessment domain into the router.
//
// Pattern to follow when adding a new domain:
//  1. Create UseCase:      uc := mydomainUC.New(...)
//  2. Create HTTP Handler: h := mydomainHTTP.New(srv.l, uc)
//  3. Register Routes:     mydomainHTTP.RegisterRoutes(api.Group("/myresource"), h, mw)
func (srv HTTPServer) setupAssessmentDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	h := assessmentHTTP.New(srv.l, srv.assessmentUC)

	assessmentHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Assessment domain registered")
	return nil
}
