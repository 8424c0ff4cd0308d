package cmd

import (
	"fmt"

	"foliosync/api"
	"foliosync/internal"
	"foliosync/internal/repository"
	"foliosync/internal/service"
)

// InitializeDependencies wires the session core: one identity subscription,
// one allocation store, one analysis pipeline. The returned handler owns
// the session subscription until CloseDependencies.
func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	identityRepository := repository.NewGoogleIdentityRepository(secrets.TokenSigningSecret)
	documentRepository := repository.NewDocumentRepository(secrets.DocumentServiceURL)
	analysisRepository := repository.NewAnalysisRepository(secrets.AnalysisBackendURL)

	allocationStore := service.NewAllocationStore(documentRepository)
	sessionService := service.NewSessionService(identityRepository, documentRepository, allocationStore)
	analysisService := service.NewAnalysisService(analysisRepository, sessionService, allocationStore)

	handler := &api.ApiHandler{
		IdentityRepository: identityRepository,
		SessionService:     sessionService,
		AllocationStore:    allocationStore,
		AnalysisService:    analysisService,
		StopSession:        sessionService.Start(),
	}

	return handler, nil
}

func CloseDependencies(handler *api.ApiHandler) {
	if handler.StopSession != nil {
		handler.StopSession()
	}
}
