// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки питомца
var (
	// ErrPetNotFound — у пользователя нет активного питомца
	ErrPetNotFound = errors.New("питомец не найден")
	// ErrInvalidPetName — имя не прошло валидацию (1-20 символов, буквы/цифры/пробелы)
	ErrInvalidPetName = errors.New("имя может содержать только буквы, цифры и пробелы (1-20 символов)")
	// ErrUnknownAction — неизвестное действие с питомцем
	ErrUnknownAction = errors.New("неизвестное действие")
	// ErrUnknownPetType — неизвестный тип питомца
	ErrUnknownPetType = errors.New("неизвестный тип питомца")
	// ErrEggNotOwned — яйцо этого типа не куплено
	ErrEggNotOwned = errors.New("сначала купите яйцо этого типа в магазине")
)

// Ошибки экономики (монеты, гемы)
var (
	// ErrInsufficientFunds — списание увело бы баланс в минус
	ErrInsufficientFunds = errors.New("недостаточно средств на счёте")
	// ErrInvalidAmount — некорректная сумма (ноль или отрицательная)
	ErrInvalidAmount = errors.New("сумма должна быть положительной")
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
)

// Ошибки инвентаря
var (
	// ErrUnknownItem — предмет не существует
	ErrUnknownItem = errors.New("такого предмета не существует")
	// ErrNotEnoughItems — в инвентаре меньше предметов, чем запрошено
	ErrNotEnoughItems = errors.New("недостаточно предметов в инвентаре")
)

// Ошибки админки
var (
	// ErrNotAdmin — пользователь не является администратором
	ErrNotAdmin = errors.New("у вас нет прав администратора")
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
)

// Ошибки авторизации Mini App
var (
	// ErrInvalidInitData — подпись init-data не сошлась или данные устарели
	ErrInvalidInitData = errors.New("некорректные данные авторизации Telegram")
)
