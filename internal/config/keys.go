package config

const (
	KeySplitStrategy    = "split_strategy"
	KeyChunkSize        = "chunk_size"
	KeyChunkOverlap     = "chunk_overlap"
	KeyKeepSeparator    = "keep_separator"
	KeyTokenEncoding    = "token_encoding"
	KeyLogLevel         = "log_level"
	KeyStorePath        = "store_path"
	KeyPostgresURL      = "postgres_url"
	KeyDBDebug          = "db_debug"
	KeyOllamaURL        = "ollama_url"
	KeyEmbeddingModel   = "embedding_model_name"
	KeyEmbeddingTimeout = "embedding_timeout"
	KeyMCPAddr          = "mcp_addr"
	KeyMigrationsDir    = "db_migrations_dir"
	KeyMaxContentBytes  = "max_content_bytes"
)
