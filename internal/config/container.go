package config

import (
	"deck-converter/internal/domain"
	"deck-converter/internal/repository"
	"deck-converter/internal/service"
	"deck-converter/pkg/logger"
)

// ConverterContainer holds the conversion service's dependencies
type ConverterContainer struct {
	Config            domain.Config
	Logger            domain.Logger
	ConversionService *service.ConversionService
}

// NewConverterContainer wires the conversion service
func NewConverterContainer() *ConverterContainer {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Persistence is optional; the converter is fully functional stateless.
	var repo domain.ConversionRepository = repository.NoopConversionRepository{}
	if config.GetSupabaseURL() != "" && config.GetSupabaseKey() != "" {
		supabaseClient := repository.NewSupabaseClient(config, appLogger)
		if err := supabaseClient.Initialize(); err != nil {
			appLogger.Warn("Supabase unavailable; conversion runs will not be recorded", "error", err)
		} else {
			repo = repository.NewSupabaseConversionRepository(supabaseClient, appLogger)
		}
	}

	office := service.NewSofficeConverter(config.GetSofficePath(), config.GetConvertTimeout(), appLogger)
	renderer := service.NewFitzRenderer(appLogger, config.GetRenderWorkers(), config.GetPageTimeout())
	parser := service.NewPPTXParser(appLogger)

	return &ConverterContainer{
		Config:            config,
		Logger:            appLogger,
		ConversionService: service.NewConversionService(office, renderer, parser, repo, appLogger),
	}
}

// StudioContainer holds the deck studio's dependencies
type StudioContainer struct {
	Config      domain.Config
	Logger      domain.Logger
	DeckService *service.DeckService
}

// NewStudioContainer wires the studio
func NewStudioContainer() *StudioContainer {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	store := repository.NewMemoryDeckStore(config.GetDeckCacheSize(), appLogger)
	parser := service.NewPPTXParser(appLogger)
	writer := service.NewPPTXWriter(appLogger)
	office := service.NewSofficeConverter(config.GetSofficePath(), config.GetConvertTimeout(), appLogger)
	client := service.NewConverterClient(config.GetConversionServiceURL(), 0, appLogger)

	var notes domain.NotesGenerator
	if ns := service.NewNotesService(config.GetOpenAIKey(), config.GetOpenAIBaseURL(), config.GetOpenAIModel(), appLogger); ns != nil {
		notes = ns
	}

	var storage domain.ArtifactStorage
	if config.GetSupabaseURL() != "" && config.GetSupabaseKey() != "" {
		storage = repository.NewSupabaseArtifactStorage(
			config.GetSupabaseURL(), config.GetSupabaseKey(), config.GetStorageBucket())
	}

	return &StudioContainer{
		Config:      config,
		Logger:      appLogger,
		DeckService: service.NewDeckService(store, parser, writer, office, client, notes, storage, appLogger),
	}
}
