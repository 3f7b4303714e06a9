package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/docsplit/internal/config"
	"github.com/roivaz/docsplit/internal/db"
	"github.com/roivaz/docsplit/internal/embeddings"
	"github.com/roivaz/docsplit/internal/extract"
	"github.com/roivaz/docsplit/internal/logging"
	"github.com/roivaz/docsplit/internal/mcp/tools"
	"github.com/roivaz/docsplit/internal/splitter"
)

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
	Database     *db.Database
	Logger       logging.Logger
}

// DefaultConfig wires every tool from viper settings. search_chunks and
// get_document_chunks are only registered when postgres_url is set.
func DefaultConfig(log logging.Logger) (Config, error) {
	adapters := map[string]ToolAdapter{
		"convert_document": &tools.ConvertDocumentHandler{Extractor: extract.NewRegistry(log.WithName("extract"), config.MaxContentBytes())},
		"split_text":       &tools.SplitTextHandler{Splitter: splitter.New(log.WithName("splitter")), Defaults: config.SplitDefaults()},
		"list_strategies":  &tools.ListStrategiesHandler{},
	}

	cfg := Config{
		ToolAdapters: adapters,
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath("/mcp/jsonrpc"),
			server.WithStateLess(true),
		},
		Logger: log,
	}

	if config.PostgresURL() == "" {
		log.Info("postgres_url not set; database tools disabled")
		return cfg, nil
	}

	database, err := db.NewDatabase(db.Config{DSN: config.PostgresURL(), Debug: config.DBDebug()})
	if err != nil {
		return Config{}, fmt.Errorf("connect database: %w", err)
	}
	embedClient, err := embeddings.NewClient(config.OllamaURL(), config.EmbeddingModel(), config.EmbeddingTimeout(), log.WithName("embeddings"))
	if err != nil {
		_ = database.Close()
		return Config{}, fmt.Errorf("create embedding client: %w", err)
	}

	repo := db.NewSearchRepository(database)
	service := tools.NewDBSearchService(repo, embedClient)
	adapters["search_chunks"] = &tools.SearchChunksHandler{Service: service}
	adapters["get_document_chunks"] = &tools.GetDocumentChunksHandler{Service: service}
	cfg.Database = database
	return cfg, nil
}
