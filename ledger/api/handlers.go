package api

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/acceptinvitation"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/addfriend"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/cancelsquad"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/contributesteps"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/createsquad"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/declineinvitation"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/joinchallenge"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/markredemptionused"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/recordchallengeprogress"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/recorddailysteps"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/redeemoffer"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/redeemsquadreward"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/registeraccount"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/command/removefriend"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/activesquad"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/challengeprogress"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/friendlist"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/leaguestandings"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/listredemptions"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/validategroupredemption"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/validateredemption"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/walletbalance"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/shell"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/shell/observable"
)

// EventStore is the event store the handlers run on.
type EventStore interface {
	createsquad.EventStore
}

// Handlers holds one handler per feature, core or wrapped.
type Handlers struct {
	RegisterAccount    shell.CommandHandler[registeraccount.Command, registeraccount.Result]
	RecordDailySteps   shell.CommandHandler[recorddailysteps.Command, recorddailysteps.Result]
	RedeemOffer        shell.CommandHandler[redeemoffer.Command, redeemoffer.Result]
	MarkRedemptionUsed shell.CommandHandler[markredemptionused.Command, markredemptionused.Result]
	CreateSquad        shell.CommandHandler[createsquad.Command, createsquad.Result]
	AcceptInvitation   shell.CommandHandler[acceptinvitation.Command, acceptinvitation.Result]
	DeclineInvitation  shell.CommandHandler[declineinvitation.Command, declineinvitation.Result]
	CancelSquad        shell.CommandHandler[cancelsquad.Command, cancelsquad.Result]
	ContributeSteps    shell.CommandHandler[contributesteps.Command, contributesteps.Result]
	RedeemSquadReward  shell.CommandHandler[redeemsquadreward.Command, redeemsquadreward.Result]

	AddFriend               shell.CommandHandler[addfriend.Command, addfriend.Result]
	RemoveFriend            shell.CommandHandler[removefriend.Command, removefriend.Result]
	JoinChallenge           shell.CommandHandler[joinchallenge.Command, joinchallenge.Result]
	RecordChallengeProgress shell.CommandHandler[recordchallengeprogress.Command, recordchallengeprogress.Result]

	WalletBalance           shell.QueryHandler[walletbalance.Query, walletbalance.Wallet]
	ValidateRedemption      shell.QueryHandler[validateredemption.Query, validateredemption.Validation]
	ListRedemptions         shell.QueryHandler[listredemptions.Query, listredemptions.Redemptions]
	ActiveSquad             shell.QueryHandler[activesquad.Query, activesquad.ActiveSquad]
	ValidateGroupRedemption shell.QueryHandler[validategroupredemption.Query, validategroupredemption.Validation]
	LeagueStandings         shell.QueryHandler[leaguestandings.Query, leaguestandings.LeagueStandings]
	FriendList              shell.QueryHandler[friendlist.Query, friendlist.FriendList]
	ChallengeProgress       shell.QueryHandler[challengeprogress.Query, challengeprogress.ChallengeProgress]
}

// Settings tune the command handlers, zero values keep the handler defaults.
type Settings struct {
	DailyGoal          int
	MinimumStepDelta   int
	CommandTimeout     time.Duration
	MaxRetryAttempts   int
	RedemptionValidity time.Duration
	Logger             shell.Logger
}

// NewHandlers builds the core handlers of all features on eventStore.
func NewHandlers(eventStore EventStore, settings Settings) Handlers {
	var retries []shell.RetryOption
	if settings.MaxRetryAttempts > 0 {
		retries = append(retries, shell.WithMaxAttempts(settings.MaxRetryAttempts))
	}

	recordOptions := []recorddailysteps.Option{
		recorddailysteps.WithRetryOptions(retries...),
		recorddailysteps.WithTimeout(settings.CommandTimeout),
	}
	if settings.DailyGoal > 0 {
		recordOptions = append(recordOptions, recorddailysteps.WithDailyGoal(settings.DailyGoal))
	}
	if settings.MinimumStepDelta > 0 {
		recordOptions = append(recordOptions, recorddailysteps.WithMinimumStepDelta(settings.MinimumStepDelta))
	}

	createOptions := []createsquad.Option{
		createsquad.WithRetryOptions(retries...),
		createsquad.WithTimeout(settings.CommandTimeout),
	}
	if settings.Logger != nil {
		createOptions = append(createOptions, createsquad.WithLogger(settings.Logger))
	}

	return Handlers{
		RegisterAccount: registeraccount.NewCommandHandler(eventStore,
			registeraccount.WithRetryOptions(retries...),
			registeraccount.WithTimeout(settings.CommandTimeout),
		),
		RecordDailySteps: recorddailysteps.NewCommandHandler(eventStore, recordOptions...),
		RedeemOffer: redeemoffer.NewCommandHandler(eventStore,
			redeemoffer.WithRetryOptions(retries...),
			redeemoffer.WithTimeout(settings.CommandTimeout),
			redeemoffer.WithRedemptionValidity(settings.RedemptionValidity),
		),
		MarkRedemptionUsed: markredemptionused.NewCommandHandler(eventStore,
			markredemptionused.WithRetryOptions(retries...),
			markredemptionused.WithTimeout(settings.CommandTimeout),
		),
		CreateSquad: createsquad.NewCommandHandler(eventStore, createOptions...),
		AcceptInvitation: acceptinvitation.NewCommandHandler(eventStore,
			acceptinvitation.WithRetryOptions(retries...),
			acceptinvitation.WithTimeout(settings.CommandTimeout),
		),
		DeclineInvitation: declineinvitation.NewCommandHandler(eventStore,
			declineinvitation.WithRetryOptions(retries...),
			declineinvitation.WithTimeout(settings.CommandTimeout),
		),
		CancelSquad: cancelsquad.NewCommandHandler(eventStore,
			cancelsquad.WithRetryOptions(retries...),
			cancelsquad.WithTimeout(settings.CommandTimeout),
		),
		ContributeSteps: contributesteps.NewCommandHandler(eventStore,
			contributesteps.WithRetryOptions(retries...),
			contributesteps.WithTimeout(settings.CommandTimeout),
		),
		RedeemSquadReward: redeemsquadreward.NewCommandHandler(eventStore,
			redeemsquadreward.WithRetryOptions(retries...),
			redeemsquadreward.WithTimeout(settings.CommandTimeout),
		),

		AddFriend: addfriend.NewCommandHandler(eventStore,
			addfriend.WithRetryOptions(retries...),
			addfriend.WithTimeout(settings.CommandTimeout),
		),
		RemoveFriend: removefriend.NewCommandHandler(eventStore,
			removefriend.WithRetryOptions(retries...),
			removefriend.WithTimeout(settings.CommandTimeout),
		),
		JoinChallenge: joinchallenge.NewCommandHandler(eventStore,
			joinchallenge.WithRetryOptions(retries...),
			joinchallenge.WithTimeout(settings.CommandTimeout),
		),
		RecordChallengeProgress: recordchallengeprogress.NewCommandHandler(eventStore,
			recordchallengeprogress.WithRetryOptions(retries...),
			recordchallengeprogress.WithTimeout(settings.CommandTimeout),
		),

		WalletBalance:           walletbalance.NewQueryHandler(eventStore),
		ValidateRedemption:      validateredemption.NewQueryHandler(eventStore),
		ListRedemptions:         listredemptions.NewQueryHandler(eventStore),
		ActiveSquad:             activesquad.NewQueryHandler(eventStore),
		ValidateGroupRedemption: validategroupredemption.NewQueryHandler(eventStore),
		LeagueStandings:         leaguestandings.NewQueryHandler(eventStore),
		FriendList:              friendlist.NewQueryHandler(eventStore),
		ChallengeProgress:       challengeprogress.NewQueryHandler(eventStore),
	}
}

// Observers are the collectors the wrapped handlers report to, nil collectors are skipped.
type Observers struct {
	Metrics          shell.MetricsCollector
	Tracing          shell.TracingCollector
	ContextualLogger shell.ContextualLogger
	Logger           shell.Logger
}

// Observed wraps every handler with an observable wrapper.
func (h Handlers) Observed(observers Observers) (Handlers, error) {
	var observed Handlers
	var err error

	if observed.RegisterAccount, err = observeCommand(h.RegisterAccount, observers); err != nil {
		return Handlers{}, err
	}
	if observed.RecordDailySteps, err = observeCommand(h.RecordDailySteps, observers); err != nil {
		return Handlers{}, err
	}
	if observed.RedeemOffer, err = observeCommand(h.RedeemOffer, observers); err != nil {
		return Handlers{}, err
	}
	if observed.MarkRedemptionUsed, err = observeCommand(h.MarkRedemptionUsed, observers); err != nil {
		return Handlers{}, err
	}
	if observed.CreateSquad, err = observeCommand(h.CreateSquad, observers); err != nil {
		return Handlers{}, err
	}
	if observed.AcceptInvitation, err = observeCommand(h.AcceptInvitation, observers); err != nil {
		return Handlers{}, err
	}
	if observed.DeclineInvitation, err = observeCommand(h.DeclineInvitation, observers); err != nil {
		return Handlers{}, err
	}
	if observed.CancelSquad, err = observeCommand(h.CancelSquad, observers); err != nil {
		return Handlers{}, err
	}
	if observed.ContributeSteps, err = observeCommand(h.ContributeSteps, observers); err != nil {
		return Handlers{}, err
	}
	if observed.RedeemSquadReward, err = observeCommand(h.RedeemSquadReward, observers); err != nil {
		return Handlers{}, err
	}
	if observed.AddFriend, err = observeCommand(h.AddFriend, observers); err != nil {
		return Handlers{}, err
	}
	if observed.RemoveFriend, err = observeCommand(h.RemoveFriend, observers); err != nil {
		return Handlers{}, err
	}
	if observed.JoinChallenge, err = observeCommand(h.JoinChallenge, observers); err != nil {
		return Handlers{}, err
	}
	if observed.RecordChallengeProgress, err = observeCommand(h.RecordChallengeProgress, observers); err != nil {
		return Handlers{}, err
	}

	if observed.WalletBalance, err = observeQuery(h.WalletBalance, observers); err != nil {
		return Handlers{}, err
	}
	if observed.ValidateRedemption, err = observeQuery(h.ValidateRedemption, observers); err != nil {
		return Handlers{}, err
	}
	if observed.ListRedemptions, err = observeQuery(h.ListRedemptions, observers); err != nil {
		return Handlers{}, err
	}
	if observed.ActiveSquad, err = observeQuery(h.ActiveSquad, observers); err != nil {
		return Handlers{}, err
	}
	if observed.ValidateGroupRedemption, err = observeQuery(h.ValidateGroupRedemption, observers); err != nil {
		return Handlers{}, err
	}
	if observed.LeagueStandings, err = observeQuery(h.LeagueStandings, observers); err != nil {
		return Handlers{}, err
	}
	if observed.FriendList, err = observeQuery(h.FriendList, observers); err != nil {
		return Handlers{}, err
	}
	if observed.ChallengeProgress, err = observeQuery(h.ChallengeProgress, observers); err != nil {
		return Handlers{}, err
	}

	return observed, nil
}

func observeCommand[C shell.Command, R shell.CommandResult](
	handler shell.CommandHandler[C, R],
	observers Observers,
) (shell.CommandHandler[C, R], error) {

	wrapper, err := observable.NewCommandWrapper(handler,
		observable.WithCommandMetrics[C, R](observers.Metrics),
		observable.WithCommandTracing[C, R](observers.Tracing),
		observable.WithCommandContextualLogging[C, R](observers.ContextualLogger),
		observable.WithCommandLogging[C, R](observers.Logger),
	)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

func observeQuery[Q shell.Query, R any](
	handler shell.QueryHandler[Q, R],
	observers Observers,
) (shell.QueryHandler[Q, R], error) {

	wrapper, err := observable.NewQueryWrapper(handler,
		observable.WithQueryMetrics[Q, R](observers.Metrics),
		observable.WithQueryTracing[Q, R](observers.Tracing),
		observable.WithQueryContextualLogging[Q, R](observers.ContextualLogger),
		observable.WithQueryLogging[Q, R](observers.Logger),
	)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}
