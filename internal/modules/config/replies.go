package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

const repliesFileENV = "REPLIES_FILE"

// Replies — канонические тексты ответов бота. Лежат в configs/replies.yaml,
// чтобы менять формулировки без пересборки. Файл опционален — без него
// работают встроенные тексты.
type Replies struct {
	AccessDenied   string `yaml:"access_denied"`
	NoRights       string `yaml:"no_rights"`
	BalanceError   string `yaml:"balance_error"`
	PositionsError string `yaml:"positions_error"`
	RefreshError   string `yaml:"refresh_error"`
	StatsError     string `yaml:"stats_error"`
	NoPositions    string `yaml:"no_positions"`
	Greeting       string `yaml:"greeting"`
	GreetingPrime  string `yaml:"greeting_prime"`
	Rules          string `yaml:"rules"`
}

func defaultReplies() Replies {
	return Replies{
		AccessDenied:   "⛔ Доступ запрещен",
		NoRights:       "Привет господин %s! Я твой Bybit bot монитор. но пока у тебя нет прав, но ты можешь обратиться за правами к админу @ftwlool",
		BalanceError:   "❌ Ошибка при получении баланса",
		PositionsError: "❌ Ошибка при получении позиций",
		RefreshError:   "❌ Ошибка при обновлении данных",
		StatsError:     "❌ Ошибка при получении статистики",
		NoPositions:    "🔎 Нет открытых позиций",
		Greeting:       "Привет господин %s! Я твой Bybit bot монитор.",
		GreetingPrime:  "Привет госпожа и самая милейшая булочка %s! Я твой Bybit bot монитор.",
		Rules: `🔹 *Правила управления торговлей* 🔹

📊 *1. Контроль объема позиции*
   - ✅ *Норма*: объем ≤ 1x баланса (💰%.1f)
   - ⚠️ *Предупреждение*: объем > 1x (💰%.1f), до ≤ 2x (💰%.1f)
   - 🔴 *Стоп-торговля*: объем > 2x (💰%.1f)

🔻 *2. Лимит убытков*
   - При падении баланса на -20%% останавливать торговлю
     или переводить в безопасный режим,
     как при ночной торговле объем ≤ 0.2x баланса (💰%.1f).

🌙 *3. Ночной режим (19:00 – 05:00)*
   - ❌ Торговля запрещена.
   - *Исключение*: если объем ≤ 0.2x баланса (💰%.1f).

📌 *Доп. правила безопасности*:
   - 🔸 Трейлинг-стоп (стоп профит) при прибыли *≥3%%*.
   - 🔸 Фиксация части прибыли при *+10%%*.
   - 🔸 Стоп при резких скачках цены (*>5%% за 5 мин*).
   - 🔸 Плечо *>10x* → предупреждение.`,
	}
}

// NewReplies читает переопределения из yaml и накладывает их на дефолты.
func NewReplies() (*Replies, error) {
	replies := defaultReplies()

	fileName := os.Getenv(repliesFileENV)
	if fileName == "" {
		fileName = "replies.yaml"
	}
	file, err := os.Open("configs/" + fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return &replies, nil
		}
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	var override Replies
	if err := yaml.NewDecoder(file).Decode(&override); err != nil {
		return nil, err
	}
	replies.merge(override)

	return &replies, nil
}

func (r *Replies) merge(o Replies) {
	if o.AccessDenied != "" {
		r.AccessDenied = o.AccessDenied
	}
	if o.NoRights != "" {
		r.NoRights = o.NoRights
	}
	if o.BalanceError != "" {
		r.BalanceError = o.BalanceError
	}
	if o.PositionsError != "" {
		r.PositionsError = o.PositionsError
	}
	if o.RefreshError != "" {
		r.RefreshError = o.RefreshError
	}
	if o.StatsError != "" {
		r.StatsError = o.StatsError
	}
	if o.NoPositions != "" {
		r.NoPositions = o.NoPositions
	}
	if o.Greeting != "" {
		r.Greeting = o.Greeting
	}
	if o.GreetingPrime != "" {
		r.GreetingPrime = o.GreetingPrime
	}
	if o.Rules != "" {
		r.Rules = o.Rules
	}
}
