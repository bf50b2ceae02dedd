package oms

import (
	"errors"
	"strings"
)

const (
	urlPrefix    = "oms:"
	urlSeparator = "://"
)

var ErrInvalidURL = errors.New("invalid oms url, want oms:<driver>://<host:port>[,<host:port>]/<region>")

// URL is a parsed access point, e.g. oms:rocketmq://127.0.0.1:9876/namespace.
type URL struct {
	Driver       string
	AccessPoints []string
	Region       string
}

func ParseURL(raw string) (u *URL, err error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, urlPrefix) {
		return nil, ErrInvalidURL
	}

	rest := raw[len(urlPrefix):]
	index := strings.Index(rest, urlSeparator)
	if index < 1 {
		return nil, ErrInvalidURL
	}

	u = &URL{Driver: rest[:index]}
	rest = rest[index+len(urlSeparator):]

	hosts := rest
	if slash := strings.Index(rest, "/"); slash >= 0 {
		hosts, u.Region = rest[:slash], rest[slash+1:]
	}

	u.AccessPoints = splitHosts(hosts)
	if len(u.AccessPoints) == 0 {
		return nil, ErrInvalidURL
	}
	return u, nil
}

// splitHosts accepts both ',' and the RocketMQ style ';' as separators.
func splitHosts(hosts string) (list []string) {
	for _, host := range strings.FieldsFunc(hosts, func(r rune) bool { return r == ',' || r == ';' }) {
		if host = strings.TrimSpace(host); host != "" {
			list = append(list, host)
		}
	}
	return
}

func (u *URL) String() string {
	return urlPrefix + u.Driver + urlSeparator + strings.Join(u.AccessPoints, ",") + "/" + u.Region
}

// ParseAccessPoints accepts either a full oms url or a bare host list.
func ParseAccessPoints(value string) (hosts []string, err error) {
	if strings.HasPrefix(strings.TrimSpace(value), urlPrefix) {
		var u *URL
		if u, err = ParseURL(value); err != nil {
			return nil, err
		}
		return u.AccessPoints, nil
	}

	if hosts = splitHosts(value); len(hosts) == 0 {
		return nil, ErrInvalidURL
	}
	return hosts, nil
}
