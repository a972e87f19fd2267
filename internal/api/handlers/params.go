package handlers

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidID возвращается при некорректном идентификаторе в параметрах запроса
var ErrInvalidID = errors.New("handlers: invalid id")

// ParseIDList собирает ID из параметров запроса. Каждый ключ может повторяться
// и содержать список через запятую: ?menuIds=1,2&menuIds=3
func ParseIDList(query url.Values, keys ...string) ([]int64, error) {
	ids := make([]int64, 0)
	for _, key := range keys {
		for _, value := range query[key] {
			for _, part := range strings.Split(value, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				id, err := strconv.ParseInt(part, 10, 64)
				if err != nil || id <= 0 {
					return nil, ErrInvalidID
				}
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// ParseOptionalID возвращает первый непустой ID из перечисленных ключей.
// Пустое значение, "any" и "null" означают отсутствие ID.
func ParseOptionalID(query url.Values, keys ...string) (*int64, error) {
	for _, key := range keys {
		value := strings.TrimSpace(query.Get(key))
		switch strings.ToLower(value) {
		case "", "any", "null":
			continue
		}
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id <= 0 {
			return nil, ErrInvalidID
		}
		return &id, nil
	}
	return nil, nil
}

// ParsePathID разбирает положительный ID из пути
func ParsePathID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
