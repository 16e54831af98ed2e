package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_KBHome(t *testing.T) {
	home := filepath.Join(t.TempDir(), "kbhome")
	t.Setenv(EnvHome, home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.toml"), store.Path())
	assert.DirExists(t, home)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.provider", "deepseek"))
	require.NoError(t, store.Set("fetch.timeout_seconds", 45))
	require.NoError(t, store.Set("llm.rate_per_second", 1.5))
	require.NoError(t, store.Set("tags.allow_new", false))
	require.NoError(t, store.Set("tags.extra", []string{"a", "b"}))

	assert.Equal(t, "deepseek", store.GetString("llm.provider"))
	assert.Equal(t, 45, store.GetInt("fetch.timeout_seconds"))
	assert.InDelta(t, 1.5, store.GetFloat("llm.rate_per_second"), 0.0001)
	assert.False(t, store.GetBool("tags.allow_new"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("tags.extra"))

	// Wrong types and missing keys return zero values
	assert.Empty(t, store.GetString("fetch.timeout_seconds"))
	assert.Zero(t, store.GetInt("llm.provider"))
	assert.Zero(t, store.GetFloat("missing"))
	assert.False(t, store.GetBool("llm.provider"))
	assert.Nil(t, store.GetStringSlice("llm.provider"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.provider", "openai"))
	require.NoError(t, store.Set("archive.s3.bucket", "kb-attachments"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[llm]")
	assert.Contains(t, content, "[archive.s3]")
	assert.False(t, strings.Contains(content, "'llm.provider'"), "keys should not be quoted dotted strings")
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("telegram.channel_id", "@kbchannel"))
	require.NoError(t, store1.Set("pending.ttl_minutes", 90))
	require.NoError(t, store1.Set("llm.rate_per_second", 2))
	require.NoError(t, store1.Set("archive.s3.use_path_style", true))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "@kbchannel", store2.GetString("telegram.channel_id"))
	assert.Equal(t, 90, store2.GetInt("pending.ttl_minutes"))
	assert.InDelta(t, 2.0, store2.GetFloat("llm.rate_per_second"), 0.0001)
	assert.True(t, store2.GetBool("archive.s3.use_path_style"))
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[llm]
provider = "kimi"
rate_per_second = 0.5

[pending.redis]
addr = "localhost:6379"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "kimi", store.GetString("llm.provider"))
	assert.InDelta(t, 0.5, store.GetFloat("llm.rate_per_second"), 0.0001)
	assert.Equal(t, "localhost:6379", store.GetString("pending.redis.addr"))
}

func TestConfigStore_Load_NonExistentAndEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(store.Path(), []byte{}, 0600))
	require.NoError(t, store.Load())
	_, ok = store.Get("any_key")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("telegram.bot_token", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.model", "glm-4-flash"))
	require.NoError(t, store.Set("llm.model", "glm-4-plus"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.toml", entries[0].Name())
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("test", "value"))

	// Replace the file with a directory to cause a write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another", "value"))
	assert.Error(t, store.Save())
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "section.key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetFloat(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		assert.Equal(t, i, store.GetInt("section.key"+string(rune('0'+i))))
	}
}

func TestNestMap_InvertsFlattenMap(t *testing.T) {
	flat := map[string]any{
		"llm.provider":      "glm",
		"archive.s3.bucket": "b",
		"top":               int64(1),
	}

	nested := nestMap(flat)

	assert.Equal(t, "glm", nested["llm"].(map[string]any)["provider"])
	assert.Equal(t, "b", nested["archive"].(map[string]any)["s3"].(map[string]any)["bucket"])
	assert.Equal(t, flat, flattenMap(nested, ""))
}
