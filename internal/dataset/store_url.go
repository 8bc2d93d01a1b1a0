package dataset

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

type storeConnInfo struct {
	addr     string
	username string
	password string
	selectDB int
	useTLS   bool
}

func parseStoreURL(raw string) (storeConnInfo, error) {
	if strings.TrimSpace(raw) == "" {
		return storeConnInfo{}, errors.New("dataset store url is empty")
	}

	if !strings.Contains(raw, "://") {
		return parseStoreAddr(raw)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return storeConnInfo{}, fmt.Errorf("parse url: %w", err)
	}

	host := parsed.Hostname()
	if host == "" {
		return storeConnInfo{}, errors.New("dataset store host missing")
	}

	port := parsed.Port()
	if port == "" {
		port = "6379"
	}

	selectDB := 0
	if strings.TrimSpace(parsed.Path) != "" && parsed.Path != "/" {
		path := strings.TrimPrefix(parsed.Path, "/")
		db, err := strconv.Atoi(path)
		if err != nil || db < 0 {
			return storeConnInfo{}, errors.New("invalid dataset store db")
		}
		selectDB = db
	}

	username := ""
	password := ""
	if parsed.User != nil {
		username = parsed.User.Username()
		password, _ = parsed.User.Password()
	}

	scheme := strings.ToLower(parsed.Scheme)
	switch scheme {
	case "redis", "valkey":
	case "rediss", "valkeys":
	default:
		return storeConnInfo{}, fmt.Errorf("unsupported dataset store scheme: %s", parsed.Scheme)
	}

	return storeConnInfo{
		addr:     net.JoinHostPort(host, port),
		username: username,
		password: password,
		selectDB: selectDB,
		useTLS:   scheme == "rediss" || scheme == "valkeys",
	}, nil
}

func parseStoreAddr(raw string) (storeConnInfo, error) {
	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		host = raw
		port = "6379"
	}
	if strings.TrimSpace(host) == "" {
		return storeConnInfo{}, errors.New("dataset store host missing")
	}
	return storeConnInfo{addr: net.JoinHostPort(host, port)}, nil
}
