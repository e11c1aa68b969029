package utils

import "sync"

// KeyedMutex сериализует операции над одной сущностью, не блокируя остальные.
// Мьютексы создаются лениво и не освобождаются: множество ключей ограничено
// количеством живых сущностей в рамках процесса.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock блокирует ключ и возвращает функцию разблокировки
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
