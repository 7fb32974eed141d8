// Package store détient l'état en mémoire du planning : la liste des
// infirmières et le planning du mois affiché, miroir des lignes détenues
// par la passerelle distante qui reste la source de vérité en cas de
// conflit. Toutes les mutations passent par un rechargement complet
// plutôt qu'un patch local : c'est le choix assumé de cohérence avant
// latence.
package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/domain"
)

// Gateway est la frontière de persistance consommée par le magasin.
// Toute implémentation exposant ces opérations convient ; WriteDay,
// CreateNurse et DeleteNurse sont idempotentes par leur clé naturelle.
type Gateway interface {
	FetchNurses(ctx context.Context) ([]domain.Nurse, error)
	FetchMonthSchedule(ctx context.Context, nurseID string, year, month int) ([]domain.DaySchedule, error)
	WriteDay(ctx context.Context, nurseID string, year, month, day int, status domain.ShiftStatus, notes []domain.Note) error
	CreateNurse(ctx context.Context, nurse *domain.Nurse) error
	DeleteNurse(ctx context.Context, nurseID string) error
}

// Snapshot est la vue en lecture seule remise à la présentation.
type Snapshot struct {
	Nurses    []domain.Nurse         `json:"nurses"`
	Schedule  domain.MonthlySchedule `json:"schedule"`
	Year      int                    `json:"year"`
	Month     int                    `json:"month"`
	Loading   bool                   `json:"loading"`
	LastError *domain.Error          `json:"-"`
}

type Store struct {
	gw Gateway

	// opMu sérialise les mutations : une opération se termine (succès ou
	// échec) avant que la suivante ne commence.
	opMu sync.Mutex

	// mu protège l'état lu par les handlers pendant qu'une mutation est en
	// cours.
	mu       sync.RWMutex
	nurses   []domain.Nurse
	schedule domain.MonthlySchedule
	year     int
	month    int
	loading  bool
	lastErr  *domain.Error

	watchMu     sync.Mutex
	watchers    map[int]func()
	nextWatchID int
}

func New(gw Gateway) *Store {
	now := time.Now()
	return &Store{
		gw:       gw,
		nurses:   []domain.Nurse{},
		schedule: domain.MonthlySchedule{},
		year:     now.Year(),
		month:    int(now.Month()),
		watchers: map[int]func(){},
	}
}

// LoadData recharge la liste des infirmières puis le planning du mois
// affiché, et remplace l'état en bloc. En cas d'échec, l'état précédent
// est intégralement conservé et seule lastError change : la grille ne
// montre jamais un chargement à moitié appliqué.
func (s *Store) LoadData(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.reload(ctx)
}

// reload doit être appelé avec opMu détenu.
func (s *Store) reload(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	s.mu.RLock()
	year, month := s.year, s.month
	s.mu.RUnlock()

	nurses, err := s.gw.FetchNurses(ctx)
	if err != nil {
		s.recordError("impossible de charger la liste des infirmières", err)
		return err
	}

	schedule := make(domain.MonthlySchedule, len(nurses))
	var schedMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, nurse := range nurses {
		nurse := nurse
		g.Go(func() error {
			days, err := s.gw.FetchMonthSchedule(gctx, nurse.ID, year, month)
			if err != nil {
				return err
			}
			schedMu.Lock()
			schedule[domain.ScheduleKey(year, month, nurse.ID)] = days
			schedMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.recordError("impossible de charger le planning du mois", err)
		return err
	}

	s.mu.Lock()
	s.nurses = nurses
	s.schedule = schedule
	s.lastErr = nil
	s.mu.Unlock()

	s.notifyWatchers()
	return nil
}

// AddNurse persiste l'infirmière puis recharge inconditionnellement :
// cela garantit que son planning vide est matérialisé à la longueur
// exacte du mois. En cas d'échec de la passerelle, l'état local n'est
// pas touché.
func (s *Store) AddNurse(ctx context.Context, nurse domain.Nurse) (domain.Nurse, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.gw.CreateNurse(ctx, &nurse); err != nil {
		s.recordError("impossible d'ajouter l'infirmière", err)
		return nurse, err
	}

	return nurse, s.reload(ctx)
}

// DeleteNurse supprime l'infirmière (les lignes de planning suivent en
// cascade côté passerelle) puis recharge. Une seconde suppression d'une
// infirmière déjà absente laisse l'état inchangé, l'échec n'étant
// consigné que dans lastError.
func (s *Store) DeleteNurse(ctx context.Context, nurseID string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.gw.DeleteNurse(ctx, nurseID); err != nil {
		s.recordError("impossible de supprimer l'infirmière", err)
		return err
	}

	return s.reload(ctx)
}

// UpdateSchedule valide la journée, écrit via la passerelle puis recharge.
// La modification n'est visible qu'une fois l'aller-retour terminé ;
// c'est voulu.
func (s *Store) UpdateSchedule(ctx context.Context, nurseID string, year, month, day int, status domain.ShiftStatus, notes []domain.Note) error {
	if !status.Valid() {
		err := domain.NewValidationError("statut de service inconnu : " + string(status))
		s.recordError(err.Message, err)
		return err
	}
	if _, err := domain.DayIndex(year, month, day); err != nil {
		s.recordError("journée invalide", err)
		return err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.gw.WriteDay(ctx, nurseID, year, month, day, status, notes); err != nil {
		s.recordError("impossible d'enregistrer la journée", err)
		return err
	}

	return s.reload(ctx)
}

// SetMonth change le mois affiché et recharge le planning correspondant.
func (s *Store) SetMonth(ctx context.Context, year, month int) error {
	if err := domain.ValidateMonth(year, month); err != nil {
		s.recordError("mois invalide", err)
		return err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	s.year = year
	s.month = month
	s.mu.Unlock()

	return s.reload(ctx)
}

// GetDay renvoie la journée stockée ou la journée par défaut {none, []}
// lorsqu'aucune donnée n'existe. Elle n'échoue jamais, quel que soit
// l'argument de jour.
func (s *Store) GetDay(nurseID string, year, month, day int) domain.DaySchedule {
	idx, err := domain.DayIndex(year, month, day)
	if err != nil {
		return domain.EmptyDay()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	days, ok := s.schedule[domain.ScheduleKey(year, month, nurseID)]
	if !ok || idx >= len(days) {
		return domain.EmptyDay()
	}

	d := days[idx]
	notes := make([]domain.Note, len(d.Notes))
	copy(notes, d.Notes)
	d.Notes = notes
	return d
}

// FetchDay lit la journée directement auprès de la passerelle, que le
// mois demandé soit affiché ou non. Les mutations qui se composent sur
// une journée existante doivent passer par cette lecture : le miroir
// local ne couvre que le mois affiché et composer dessus écraserait les
// données distantes de tout autre mois.
func (s *Store) FetchDay(ctx context.Context, nurseID string, year, month, day int) (domain.DaySchedule, error) {
	idx, err := domain.DayIndex(year, month, day)
	if err != nil {
		return domain.EmptyDay(), err
	}

	days, err := s.gw.FetchMonthSchedule(ctx, nurseID, year, month)
	if err != nil {
		s.recordError("impossible de charger la journée", err)
		return domain.EmptyDay(), err
	}
	if idx >= len(days) {
		return domain.EmptyDay(), nil
	}
	return days[idx], nil
}

func (s *Store) Nurses() []domain.Nurse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Nurse, len(s.nurses))
	copy(out, s.nurses)
	return out
}

func (s *Store) NurseByID(nurseID string) (domain.Nurse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, nurse := range s.nurses {
		if nurse.ID == nurseID {
			return nurse, true
		}
	}
	return domain.Nurse{}, false
}

func (s *Store) Month() (year, month int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.year, s.month
}

func (s *Store) LastError() *domain.Error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Snapshot copie l'état courant ; les composants de présentation ne
// touchent jamais les structures internes du magasin.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nurses := make([]domain.Nurse, len(s.nurses))
	copy(nurses, s.nurses)

	schedule := make(domain.MonthlySchedule, len(s.schedule))
	for key, days := range s.schedule {
		cp := make([]domain.DaySchedule, len(days))
		copy(cp, days)
		schedule[key] = cp
	}

	return Snapshot{
		Nurses:    nurses,
		Schedule:  schedule,
		Year:      s.year,
		Month:     s.month,
		Loading:   s.loading,
		LastError: s.lastErr,
	}
}

// Watch enregistre un observateur notifié après chaque remplacement
// d'état. La fonction renvoyée retire l'observateur et peut être appelée
// plusieurs fois sans danger.
func (s *Store) Watch(fn func()) func() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	id := s.nextWatchID
	s.nextWatchID++
	s.watchers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.watchMu.Lock()
			delete(s.watchers, id)
			s.watchMu.Unlock()
		})
	}
}

func (s *Store) notifyWatchers() {
	s.watchMu.Lock()
	fns := make([]func(), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.watchMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) recordError(message string, err error) {
	e := domain.WrapError(message, err)
	s.mu.Lock()
	s.lastErr = e
	s.mu.Unlock()
	s.notifyWatchers()
}
