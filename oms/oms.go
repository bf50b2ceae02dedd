package oms

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/grpc-boot/mesh"
)

const Version = "1.0.0"

var ErrUnknownDriver = errors.New("unknown oms driver")

type MessagingAccessPoint interface {
	Version() string
	Attributes() *mesh.KeyValue
	CreateProducer(attributes ...*mesh.KeyValue) (producer mesh.Producer, err error)
	CreatePushConsumer(attributes ...*mesh.KeyValue) (consumer mesh.PushConsumer, err error)
}

type Driver interface {
	Open(url *URL, attributes *mesh.KeyValue) (accessPoint MessagingAccessPoint, err error)
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a driver available by name. It panics on a nil driver or a
// duplicate name.
func Register(name string, driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()

	if driver == nil {
		panic("oms: Register driver is nil")
	}

	if _, dup := drivers[name]; dup {
		panic("oms: Register called twice for driver " + name)
	}
	drivers[name] = driver
}

func Drivers() (names []string) {
	driversMu.RLock()
	defer driversMu.RUnlock()

	names = make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// GetMessagingAccessPoint resolves the driver from the DRIVER_IMPL attribute,
// falling back to the url's driver name.
func GetMessagingAccessPoint(rawURL string, attributes *mesh.KeyValue) (accessPoint MessagingAccessPoint, err error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	attrs := mesh.NewKeyValue()
	if attributes != nil {
		attrs = attributes.Clone()
	}

	name := strings.TrimSpace(attrs.GetString(mesh.DriverImpl))
	if name == "" {
		name = u.Driver
		attrs.Put(mesh.DriverImpl, name)
	}

	if !attrs.ContainsKey(mesh.AccessPoints) {
		attrs.Put(mesh.AccessPoints, rawURL)
	}

	if !attrs.ContainsKey(mesh.Region) {
		attrs.Put(mesh.Region, u.Region)
	}

	driversMu.RLock()
	driver, ok := drivers[name]
	driversMu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDriver, "driver %q", name)
	}

	return driver.Open(u, attrs)
}
