// Package realtime diffuse entre les instances de l'API un signal
// « quelque chose a changé » pour les collections users, nurses et
// schedules, via redis pub/sub. Le signal ne porte aucune charge utile :
// la réaction attendue est une resynchronisation complète du magasin,
// jamais une fusion de deltas.
package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	TableUsers     = "users"
	TableNurses    = "nurses"
	TableSchedules = "schedules"
)

type Publisher struct {
	rdb    *redis.Client
	prefix string
}

func NewPublisher(rdb *redis.Client, prefix string) *Publisher {
	return &Publisher{rdb: rdb, prefix: prefix}
}

// Changed signale qu'une collection logique a été modifiée. L'écriture en
// base a déjà eu lieu quand Changed est appelé : un échec de publication
// n'invalide pas l'opération, il prive seulement les autres instances de
// la notification.
func (p *Publisher) Changed(ctx context.Context, table string) error {
	return p.rdb.Publish(ctx, p.prefix+":"+table, "changed").Err()
}

type Subscriber struct {
	rdb      *redis.Client
	prefix   string
	debounce time.Duration
}

func NewSubscriber(rdb *redis.Client, prefix string, debounce time.Duration) *Subscriber {
	return &Subscriber{rdb: rdb, prefix: prefix, debounce: debounce}
}

// Subscribe invoque fn après chaque rafale de changements sur les trois
// collections, quelle que soit l'instance à l'origine de l'écriture. Les
// notifications rapprochées sont regroupées par la fenêtre de debounce.
// La fonction renvoyée arrête l'abonnement ; elle doit être appelée au
// démontage et reste sans effet au-delà du premier appel.
func (s *Subscriber) Subscribe(ctx context.Context, fn func()) (func(), error) {
	pubsub := s.rdb.PSubscribe(ctx, s.prefix+":*")
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	messages := pubsub.Channel()
	done := make(chan struct{})

	go func() {
		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case _, ok := <-messages:
				if !ok {
					return
				}
				if timer == nil {
					timer = time.NewTimer(s.debounce)
					timerC = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-timerC:
						default:
						}
					}
					timer.Reset(s.debounce)
				}
			case <-timerC:
				timer = nil
				timerC = nil
				fn()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}
	return unsubscribe, nil
}
