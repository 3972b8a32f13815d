// Package shop отвечает за магазин: пакеты валюты, яйца и оплату
// (Telegram Stars, ЮMoney, СБП).
package shop

import (
	"fmt"
	"strconv"
	"strings"

	"pawer.ru/pawer-bot/internal/common"
)

// Package — пакет валюты в магазине.
type Package struct {
	Amount     int64 // сколько валюты получит пользователь
	PriceRUB   int64 // цена в рублях
	PriceStars int64 // цена в Telegram Stars
	BonusPct   int   // бонус в процентах, для витрины
}

// CoinPackages и GemPackages — каталог пакетов. Индекс пакета
// используется в callback-данных и payload инвойсов.
var (
	CoinPackages = []Package{
		{Amount: 1000, PriceRUB: 100, PriceStars: 50, BonusPct: 0},
		{Amount: 5000, PriceRUB: 450, PriceStars: 225, BonusPct: 10},
		{Amount: 10000, PriceRUB: 800, PriceStars: 400, BonusPct: 20},
	}
	GemPackages = []Package{
		{Amount: 10, PriceRUB: 100, PriceStars: 50, BonusPct: 0},
		{Amount: 50, PriceRUB: 450, PriceStars: 225, BonusPct: 10},
		{Amount: 100, PriceRUB: 800, PriceStars: 400, BonusPct: 20},
	}
)

// Виды валюты в payload инвойса.
const (
	KindCoins = "coins"
	KindGems  = "gems"
)

// PackageByIndex возвращает пакет по виду валюты и индексу.
func PackageByIndex(kind string, idx int) (Package, error) {
	var list []Package
	switch kind {
	case KindCoins:
		list = CoinPackages
	case KindGems:
		list = GemPackages
	default:
		return Package{}, common.ErrUnknownItem
	}
	if idx < 0 || idx >= len(list) {
		return Package{}, common.ErrUnknownItem
	}
	return list[idx], nil
}

// EncodePayload собирает payload инвойса: "coins_1".
// Payload возвращается Telegram в successful_payment как есть.
func EncodePayload(kind string, idx int) string {
	return fmt.Sprintf("%s_%d", kind, idx)
}

// DecodePayload разбирает payload инвойса обратно в (вид, индекс).
func DecodePayload(payload string) (kind string, idx int, err error) {
	parts := strings.SplitN(payload, "_", 2)
	if len(parts) != 2 {
		return "", 0, common.ErrUnknownItem
	}
	idx, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, common.ErrUnknownItem
	}
	if _, err := PackageByIndex(parts[0], idx); err != nil {
		return "", 0, err
	}
	return parts[0], idx, nil
}
