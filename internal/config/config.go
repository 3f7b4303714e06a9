package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roivaz/docsplit/internal/splitter"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeySplitStrategy, string(splitter.StrategyRecursive))
	viper.SetDefault(KeyChunkSize, splitter.DefaultChunkSize)
	viper.SetDefault(KeyChunkOverlap, splitter.DefaultChunkOverlap)
	viper.SetDefault(KeyKeepSeparator, true)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyStorePath, "ignore/docsplit.db")
	viper.SetDefault(KeyDBDebug, false)
	viper.SetDefault(KeyOllamaURL, "http://localhost:11434")
	viper.SetDefault(KeyEmbeddingModel, "nomic-embed-text")
	viper.SetDefault(KeyEmbeddingTimeout, 2*time.Minute)
	viper.SetDefault(KeyMCPAddr, ":8080")
	viper.SetDefault(KeyMaxContentBytes, int64(100*1024*1024))
}

func SplitStrategy() string           { return viper.GetString(KeySplitStrategy) }
func ChunkSize() int                  { return viper.GetInt(KeyChunkSize) }
func ChunkOverlap() int               { return viper.GetInt(KeyChunkOverlap) }
func KeepSeparator() bool             { return viper.GetBool(KeyKeepSeparator) }
func TokenEncoding() string           { return viper.GetString(KeyTokenEncoding) }
func LogLevel() string                { return viper.GetString(KeyLogLevel) }
func StorePath() string               { return viper.GetString(KeyStorePath) }
func PostgresURL() string             { return viper.GetString(KeyPostgresURL) }
func DBDebug() bool                   { return viper.GetBool(KeyDBDebug) }
func OllamaURL() string               { return viper.GetString(KeyOllamaURL) }
func EmbeddingModel() string          { return viper.GetString(KeyEmbeddingModel) }
func EmbeddingTimeout() time.Duration { return viper.GetDuration(KeyEmbeddingTimeout) }
func MCPAddr() string                 { return viper.GetString(KeyMCPAddr) }
func MigrationsDir() string           { return viper.GetString(KeyMigrationsDir) }
func MaxContentBytes() int64          { return viper.GetInt64(KeyMaxContentBytes) }

// SplitDefaults is the split configuration requests start from before their
// own parameters are applied.
func SplitDefaults() splitter.Config {
	return splitter.Config{
		Strategy:      splitter.Strategy(SplitStrategy()),
		ChunkSize:     ChunkSize(),
		ChunkOverlap:  ChunkOverlap(),
		KeepSeparator: KeepSeparator(),
		TokenEncoding: TokenEncoding(),
	}
}
