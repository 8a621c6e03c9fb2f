// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-cloud-sync/internal/collection"
	"github.com/MKhiriev/go-cloud-sync/internal/service"
)

var ErrUserQuit = errors.New("вышел из программы")

func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrWrongPassword):
		return "Неверный логин или пароль"
	case errors.Is(err, service.ErrLoginAlreadyExists):
		return "Логин уже занят"
	case errors.Is(err, service.ErrPasswordsDoNotMatch):
		return "Пароли не совпадают"
	case errors.Is(err, service.ErrTokenIsExpired), errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return "Сессия истекла, войдите снова"
	case errors.Is(err, collection.ErrEmptyCollection):
		return "Коллекция пуста"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или шлюз недоступен"
	}

	return err.Error()
}
