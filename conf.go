package mesh

import (
	"errors"
	"io/ioutil"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const (
	EnvPrefix = "EVENTMESH"

	DefaultConsumeTimeout    = 15 * 60 * 1000
	DefaultConsumeBatchSize  = 1
	DefaultPullBatchSize     = 32
	DefaultMaxReconsumeTimes = 16
	DefaultAdminAddr         = ":10106"
)

var (
	ErrEmptyNamesrvAddr  = errors.New(`namesrvAddr must be set`)
	ErrEmptyConsumeGroup = errors.New(`consumerGroup must be set`)
	ErrConfigFormat      = errors.New(`config file must be .yml, .yaml or .json`)
)

// CommonConfiguration carries the mesh node identity and the connector tuning.
// ConsumeTimeout is in milliseconds.
type CommonConfiguration struct {
	Env      string `yaml:"env" json:"env" envconfig:"ENV"`
	Region   string `yaml:"region" json:"region" envconfig:"REGION"`
	IDC      string `yaml:"idc" json:"idc" envconfig:"IDC"`
	Cluster  string `yaml:"cluster" json:"cluster" envconfig:"CLUSTER"`
	Name     string `yaml:"name" json:"name" envconfig:"NAME"`
	SysID    string `yaml:"sysId" json:"sysId" envconfig:"SYS_ID"`
	ServerIP string `yaml:"serverIp" json:"serverIp" envconfig:"SERVER_IP"`

	NamesrvAddr    string `yaml:"namesrvAddr" json:"namesrvAddr" envconfig:"NAMESRV_ADDR"`
	ClientUserName string `yaml:"clientUserName" json:"clientUserName" envconfig:"CLIENT_USERNAME"`
	ClientPass     string `yaml:"clientPass" json:"clientPass" envconfig:"CLIENT_PASS"`

	ConsumerGroup     string   `yaml:"consumerGroup" json:"consumerGroup" envconfig:"CONSUMER_GROUP"`
	Topics            []string `yaml:"topics" json:"topics" envconfig:"TOPICS"`
	Broadcast         bool     `yaml:"broadcast" json:"broadcast" envconfig:"BROADCAST"`
	ConsumeTimeout    int64    `yaml:"consumeTimeout" json:"consumeTimeout" envconfig:"CONSUME_TIMEOUT"`
	ConsumeBatchSize  int      `yaml:"consumeBatchSize" json:"consumeBatchSize" envconfig:"CONSUME_BATCH_SIZE"`
	PullBatchSize     int      `yaml:"pullBatchSize" json:"pullBatchSize" envconfig:"PULL_BATCH_SIZE"`
	MaxReconsumeTimes int      `yaml:"maxReconsumeTimes" json:"maxReconsumeTimes" envconfig:"MAX_RECONSUME_TIMES"`
	ConsumeFromWhere  string   `yaml:"consumeFromWhere" json:"consumeFromWhere" envconfig:"CONSUME_FROM_WHERE"`

	AdminAddr  string `yaml:"adminAddr" json:"adminAddr" envconfig:"ADMIN_ADDR"`
	Production bool   `yaml:"production" json:"production" envconfig:"PRODUCTION"`
}

func Yaml(filePath string, out interface{}) (err error) {
	conf, err := ioutil.ReadFile(filePath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(conf, out)
}

func Json(filePath string, out interface{}) (err error) {
	conf, err := ioutil.ReadFile(filePath)
	if err != nil {
		return err
	}

	return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(conf, out)
}

// LoadConfiguration reads filePath (skipped when empty), lets EVENTMESH_*
// environment variables override it and fills defaults for zero values.
func LoadConfiguration(filePath string) (conf *CommonConfiguration, err error) {
	conf = &CommonConfiguration{}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case "":
		if filePath != "" {
			return nil, ErrConfigFormat
		}
	case ".yml", ".yaml":
		err = Yaml(filePath, conf)
	case ".json":
		err = Json(filePath, conf)
	default:
		return nil, ErrConfigFormat
	}
	if err != nil {
		return nil, err
	}

	if err = envconfig.Process(EnvPrefix, conf); err != nil {
		return nil, err
	}

	conf.SetDefaults()
	return conf, nil
}

func (c *CommonConfiguration) SetDefaults() {
	if c.ConsumeTimeout <= 0 {
		c.ConsumeTimeout = DefaultConsumeTimeout
	}

	if c.ConsumeBatchSize <= 0 {
		c.ConsumeBatchSize = DefaultConsumeBatchSize
	}

	if c.PullBatchSize <= 0 {
		c.PullBatchSize = DefaultPullBatchSize
	}

	if c.MaxReconsumeTimes <= 0 {
		c.MaxReconsumeTimes = DefaultMaxReconsumeTimes
	}

	if c.ConsumeFromWhere == "" {
		c.ConsumeFromWhere = ConsumeFromLastOffset
	}

	if c.AdminAddr == "" {
		c.AdminAddr = DefaultAdminAddr
	}
}

func (c *CommonConfiguration) Validate() (err error) {
	if strings.TrimSpace(c.NamesrvAddr) == "" {
		return ErrEmptyNamesrvAddr
	}

	if strings.TrimSpace(c.ConsumerGroup) == "" {
		return ErrEmptyConsumeGroup
	}
	return nil
}
