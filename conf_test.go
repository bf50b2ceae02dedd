package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConf = `
env: PRD
region: sh
name: mesh-01
namesrvAddr: 127.0.0.1:9876
consumerGroup: mesh-group
topics:
  - orders
  - payments
broadcast: true
consumeTimeout: 3000
`

const jsonConf = `{
	"namesrvAddr": "10.0.0.1:9876;10.0.0.2:9876",
	"consumerGroup": "mesh-json",
	"pullBatchSize": 64,
	"topics": ["orders"]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfiguration_Yaml(t *testing.T) {
	conf, err := LoadConfiguration(writeFile(t, "mesh.yml", yamlConf))
	require.NoError(t, err)

	assert.Equal(t, "PRD", conf.Env)
	assert.Equal(t, "127.0.0.1:9876", conf.NamesrvAddr)
	assert.Equal(t, []string{"orders", "payments"}, conf.Topics)
	assert.True(t, conf.Broadcast)
	assert.Equal(t, int64(3000), conf.ConsumeTimeout)
	assert.Equal(t, DefaultPullBatchSize, conf.PullBatchSize)
	assert.Equal(t, ConsumeFromLastOffset, conf.ConsumeFromWhere)
	assert.NoError(t, conf.Validate())
}

func TestLoadConfiguration_Json(t *testing.T) {
	conf, err := LoadConfiguration(writeFile(t, "mesh.json", jsonConf))
	require.NoError(t, err)

	assert.Equal(t, "mesh-json", conf.ConsumerGroup)
	assert.Equal(t, 64, conf.PullBatchSize)
	assert.Equal(t, int64(DefaultConsumeTimeout), conf.ConsumeTimeout)
	assert.Equal(t, DefaultAdminAddr, conf.AdminAddr)
}

func TestLoadConfiguration_EnvOverride(t *testing.T) {
	t.Setenv("EVENTMESH_NAMESRV_ADDR", "192.168.1.1:9876")
	t.Setenv("EVENTMESH_TOPICS", "a,b,c")

	conf, err := LoadConfiguration(writeFile(t, "mesh.yaml", yamlConf))
	require.NoError(t, err)

	assert.Equal(t, "192.168.1.1:9876", conf.NamesrvAddr)
	assert.Equal(t, []string{"a", "b", "c"}, conf.Topics)
	assert.Equal(t, "mesh-group", conf.ConsumerGroup)
}

func TestLoadConfiguration_Errors(t *testing.T) {
	_, err := LoadConfiguration(writeFile(t, "mesh.toml", "a = 1"))
	assert.ErrorIs(t, err, ErrConfigFormat)

	_, err = LoadConfiguration(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	conf, err := LoadConfiguration("")
	require.NoError(t, err)
	assert.ErrorIs(t, conf.Validate(), ErrEmptyNamesrvAddr)

	conf.NamesrvAddr = "127.0.0.1:9876"
	assert.ErrorIs(t, conf.Validate(), ErrEmptyConsumeGroup)
}
