package kvstore

import (
	"context"
	"fmt"
)

// Options выбор и настройки backend'а
type Options struct {
	Backend Backend
	Redis   RedisOptions
	Mongo   MongoOptions
}

// Open возвращает хранилище и функцию закрытия соединений
func Open(ctx context.Context, opts Options) (Store, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), noop, nil
	case BackendRedis:
		s, err := DialRedis(ctx, opts.Redis)
		if err != nil {
			return nil, nil, err
		}
		return s, func(context.Context) error { return s.Close() }, nil
	case BackendMongo:
		s, err := DialMongo(ctx, opts.Mongo)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}
