package recommender

import "sync"

// HistoryTracker хранит для каждого пользователя множество уже
// показанных товаров. Множество только растет в течение работы
// процесса; сбрасывается явно при завершении сессии.
type HistoryTracker struct {
	users sync.Map // userID -> *userHistory
}

type userHistory struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewHistoryTracker() *HistoryTracker {
	return &HistoryTracker{}
}

// FilterAndMark выбирает из ранжированного списка до n еще не
// показанных пользователю товаров и помечает их показанными.
// Выбор и пометка выполняются в одной критической секции на
// пользователя: гонка двух запросов одного пользователя не приводит
// к повторной выдаче. Пользователи друг друга не блокируют.
func (t *HistoryTracker) FilterAndMark(userID string, ranked []string, n int) []string {
	if n <= 0 {
		return nil
	}

	h := t.historyFor(userID)

	h.mu.Lock()
	defer h.mu.Unlock()

	emitted := make([]string, 0, n)
	for _, id := range ranked {
		if _, ok := h.seen[id]; ok {
			continue
		}
		h.seen[id] = struct{}{}
		emitted = append(emitted, id)
		if len(emitted) >= n {
			break
		}
	}

	return emitted
}

// SeenCount возвращает число показанных пользователю товаров.
func (t *HistoryTracker) SeenCount(userID string) int {
	v, ok := t.users.Load(userID)
	if !ok {
		return 0
	}

	h := v.(*userHistory)
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.seen)
}

// Reset забывает историю одного пользователя. Вызывается слоем
// управления сессиями при выходе пользователя.
func (t *HistoryTracker) Reset(userID string) {
	t.users.Delete(userID)
}

func (t *HistoryTracker) historyFor(userID string) *userHistory {
	v, _ := t.users.LoadOrStore(userID, &userHistory{seen: make(map[string]struct{})})
	return v.(*userHistory)
}
