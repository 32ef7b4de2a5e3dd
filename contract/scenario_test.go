package contract_test

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"okinoko-blade_arena/contract"
	"okinoko-blade_arena/sdk"
)

const (
	alice   sdk.Address = "hive:someone"
	bob     sdk.Address = "hive:someoneelse"
	charlie sdk.Address = "hive:someoneelse2"
)

type fakeRecorder struct {
	mux    sync.Mutex
	ops    map[string]int
	events map[string]int
}

func (r *fakeRecorder) RecordOperation(op, outcome string) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.ops[op+"/"+outcome]++
}

func (r *fakeRecorder) RecordEvent(eventType string) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.events[eventType]++
}

type contractTest struct {
	contract *contract.Contract
	store    *sdk.MemoryStore
	recorder *fakeRecorder
}

func setupContractTest(opts ...contract.Option) *contractTest {
	ct := &contractTest{
		store:    sdk.NewMemoryStore(0),
		recorder: &fakeRecorder{ops: map[string]int{}, events: map[string]int{}},
	}
	opts = append([]contract.Option{contract.WithRecorder(ct.recorder)}, opts...)
	ct.contract = contract.New(ct.store, opts...)
	return ct
}

func asSender(sender sdk.Address) context.Context {
	return sdk.WithEnv(context.Background(), sdk.NewEnv(sender))
}

// callContract runs one operation as sender and checks it succeeded or failed
// as expected. The payload is '|' separated: a battle name, then a choice for
// moves, or an equipment class.
func callContract(t *testing.T, ct *contractTest, op string, payload string, sender sdk.Address, expectOK bool) error {
	t.Helper()
	ctx := asSender(sender)
	args := strings.Split(payload, "|")
	num := func(i int) uint64 {
		n, err := strconv.ParseUint(args[i], 10, 64)
		require.NoError(t, err)
		return n
	}

	var err error
	c := ct.contract
	switch op {
	case "register":
		err = c.Register(ctx, sender)
	case "equip":
		err = c.Equip(ctx, sender, contract.EquipmentClass(num(0)))
	case "unequip":
		err = c.Unequip(ctx, sender)
	case "b_create":
		err = c.CreateBattle(ctx, args[0], sender)
	case "b_create_auto":
		err = c.CreateAutoBattle(ctx, args[0], sender)
	case "b_join":
		err = c.JoinBattle(ctx, args[0], sender)
	case "b_bot":
		err = c.ChallengeBot(ctx, sender, args[0])
	case "b_move":
		err = c.SubmitMove(ctx, sender, contract.Move(num(1)), args[0])
	default:
		t.Fatalf("unknown op %s", op)
	}
	if expectOK {
		require.NoError(t, err, "%s %s by %s", op, payload, sender)
	} else {
		require.Error(t, err, "%s %s by %s", op, payload, sender)
	}
	return err
}

func getPlayer(t *testing.T, ct *contractTest, addr sdk.Address) contract.PlayerAttributes {
	t.Helper()
	p, err := ct.contract.LookupPlayer(context.Background(), addr)
	require.NoError(t, err)
	require.NotNil(t, p, "player %s", addr)
	assert.Equal(t, p.EquippedClass != contract.NoEquipment, p.HasEquipment)
	return *p
}

func getBattle(t *testing.T, ct *contractTest, name string) contract.Battle {
	t.Helper()
	b, err := ct.contract.LookupBattle(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, b, "battle %s", name)
	return *b
}

func registerAll(t *testing.T, ct *contractTest, addrs ...sdk.Address) {
	for _, a := range addrs {
		callContract(t, ct, "register", "", a, true)
	}
}

// ---------- Player registry ----------

func TestRegister(t *testing.T) {
	ct := setupContractTest()
	ctx := context.Background()

	registerAll(t, ct, alice, bob)
	err := callContract(t, ct, "register", "", alice, false)
	assert.Regexp(t, "AR010200", err)

	p := getPlayer(t, ct, alice)
	assert.Equal(t, contract.PlayerAttributes{Address: alice, Health: 100, Attack: 10, Defense: 10}, p)

	players, err := ct.contract.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []sdk.Address{alice, bob}, players)

	// registering for somebody else
	err = ct.contract.Register(asSender(alice), charlie)
	assert.Regexp(t, "AR010000", err)
	assert.Equal(t, contract.CategoryAuthorization, contract.ErrorCategory(err))

	err = ct.contract.Register(context.Background(), "")
	assert.Regexp(t, "AR010100", err)

	assert.Equal(t, 2, ct.recorder.ops["register/ok"])
	assert.Equal(t, 1, ct.recorder.ops["register/state_conflict"])
	assert.Equal(t, 1, ct.recorder.ops["register/authorization"])
	assert.Equal(t, 2, ct.recorder.events[contract.EventPlayerRegistered])
}

func TestGetPlayerUnknownIsZeroValue(t *testing.T) {
	ct := setupContractTest()
	ctx := context.Background()

	// The compatibility read cannot tell "never registered" from a zeroed
	// record; LookupPlayer can.
	p, err := ct.contract.GetPlayer(ctx, charlie)
	require.NoError(t, err)
	assert.Equal(t, contract.PlayerAttributes{}, p)

	lp, err := ct.contract.LookupPlayer(ctx, charlie)
	require.NoError(t, err)
	assert.Nil(t, lp)

	b, err := ct.contract.GetBattle(ctx, "nothing")
	require.NoError(t, err)
	assert.Equal(t, contract.Battle{}, b)
	assert.Equal(t, contract.Pending, b.Status)
}

// ---------- Equipment ledger ----------

func TestEquipUnequipEachClass(t *testing.T) {
	tests := []struct {
		class  contract.EquipmentClass
		name   string
		health uint32
		attack uint32
		def    uint32
	}{
		{contract.Longsword, "Longsword", 108, 14, 13},
		{contract.Sabre, "Sabre", 97, 26, 12},
		{contract.Claymore, "Claymore", 107, 21, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ct := setupContractTest()
			ctx := context.Background()
			registerAll(t, ct, alice)

			meta, err := ct.contract.EquipmentMetadata(ctx, tc.class)
			require.NoError(t, err)
			assert.Nil(t, meta)

			callContract(t, ct, "equip", strconv.FormatUint(uint64(tc.class), 10), alice, true)
			p := getPlayer(t, ct, alice)
			assert.Equal(t, tc.health, p.Health)
			assert.Equal(t, tc.attack, p.Attack)
			assert.Equal(t, tc.def, p.Defense)
			assert.Equal(t, tc.class, p.EquippedClass)
			assert.True(t, p.HasEquipment)

			n, err := ct.contract.BalanceOf(ctx, alice, tc.class)
			require.NoError(t, err)
			assert.Equal(t, uint64(1), n)

			meta, err = ct.contract.EquipmentMetadata(ctx, tc.class)
			require.NoError(t, err)
			require.NotNil(t, meta)
			assert.Equal(t, tc.name, meta.Name)
			assert.Equal(t, tc.class, meta.Class)

			callContract(t, ct, "unequip", "", alice, true)
			p = getPlayer(t, ct, alice)
			assert.Equal(t, contract.PlayerAttributes{Address: alice, Health: 100, Attack: 10, Defense: 10}, p)

			n, err = ct.contract.BalanceOf(ctx, alice, tc.class)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestEquippedBalanceOutlivesBattles(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := sdk.NewMemoryStore(time.Hour)
	store.SetClock(func() time.Time { return now })
	ct := &contractTest{store: store, recorder: &fakeRecorder{ops: map[string]int{}, events: map[string]int{}}}
	ct.contract = contract.New(store, contract.WithRecorder(ct.recorder))
	ctx := context.Background()

	registerAll(t, ct, alice)
	callContract(t, ct, "equip", "1", alice, true)
	for _, name := range []string{"First", "Second", "Third"} {
		now = now.Add(40 * time.Minute)
		callContract(t, ct, "b_create_auto", name, alice, true)
		for getBattle(t, ct, name).Status != contract.Ended {
			callContract(t, ct, "b_move", name+"|1", alice, true)
		}
	}

	n, err := ct.contract.BalanceOf(ctx, alice, contract.Longsword)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	callContract(t, ct, "unequip", "", alice, true)
	n, err = ct.contract.BalanceOf(ctx, alice, contract.Longsword)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, getPlayer(t, ct, alice).HasEquipment)
}

func TestUnequipWithoutLedgerEntry(t *testing.T) {
	ct := setupContractTest()
	ctx := context.Background()
	registerAll(t, ct, alice)
	callContract(t, ct, "equip", "1", alice, true)

	err := ct.store.Transaction(ctx, func(ctx context.Context, state sdk.State) error {
		return state.StateSetObject(ctx, "eb:1:"+string(alice), "")
	})
	require.NoError(t, err)

	callContract(t, ct, "unequip", "", alice, true)
	p := getPlayer(t, ct, alice)
	assert.Equal(t, contract.PlayerAttributes{Address: alice, Health: 100, Attack: 10, Defense: 10}, p)
	n, err := ct.contract.BalanceOf(ctx, alice, contract.Longsword)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBattleKeepsSeatsAlive(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := sdk.NewMemoryStore(time.Hour)
	store.SetClock(func() time.Time { return now })
	ct := &contractTest{store: store, recorder: &fakeRecorder{ops: map[string]int{}, events: map[string]int{}}}
	ct.contract = contract.New(store, contract.WithRecorder(ct.recorder))

	registerAll(t, ct, alice, bob)
	callContract(t, ct, "b_create", "Slow", alice, true)
	now = now.Add(50 * time.Minute)
	callContract(t, ct, "b_join", "Slow", bob, true)

	// each half-round keeps both seats alive with the battle
	for i := 0; i < 3; i++ {
		now = now.Add(40 * time.Minute)
		callContract(t, ct, "b_move", "Slow|2", alice, true)
		now = now.Add(40 * time.Minute)
		callContract(t, ct, "b_move", "Slow|2", bob, true)
	}
	now = now.Add(40 * time.Minute)
	callContract(t, ct, "b_move", "Slow|1", alice, true)
	now = now.Add(40 * time.Minute)
	assert.True(t, getPlayer(t, ct, alice).InBattle)
	assert.True(t, getPlayer(t, ct, bob).InBattle)
	callContract(t, ct, "b_move", "Slow|2", bob, true)
	assert.Equal(t, uint32(4), getBattle(t, ct, "Slow").Round)
	assert.Equal(t, uint32(106), getPlayer(t, ct, bob).Health)
}

func TestEquipErrors(t *testing.T) {
	ct := setupContractTest()
	registerAll(t, ct, alice, bob)

	assert.Regexp(t, "AR010102", callContract(t, ct, "equip", "0", alice, false))
	assert.Regexp(t, "AR010102", callContract(t, ct, "equip", "4", alice, false))
	assert.Regexp(t, "AR010201", callContract(t, ct, "equip", "1", charlie, false))
	assert.Regexp(t, "AR010205", callContract(t, ct, "unequip", "", alice, false))

	callContract(t, ct, "equip", "2", alice, true)
	assert.Regexp(t, "AR010204", callContract(t, ct, "equip", "1", alice, false))

	// equipping for somebody else
	err := ct.contract.Equip(asSender(bob), alice, contract.Longsword)
	assert.Regexp(t, "AR010000", err)

	_, err = ct.contract.BalanceOf(context.Background(), alice, 9)
	assert.Regexp(t, "AR010102", err)

	// no changes while in a battle
	callContract(t, ct, "b_create", "arena", alice, true)
	callContract(t, ct, "equip", "1", bob, true)
	callContract(t, ct, "b_join", "arena", bob, true)
	assert.Regexp(t, "AR010203", callContract(t, ct, "unequip", "", alice, false))
	assert.Regexp(t, "AR010203", callContract(t, ct, "unequip", "", bob, false))
	callContract(t, ct, "register", "", charlie, true)
	callContract(t, ct, "b_create", "other", charlie, true)
	assert.Regexp(t, "AR010203", callContract(t, ct, "equip", "3", charlie, false))

	p := getPlayer(t, ct, alice)
	assert.Equal(t, contract.Sabre, p.EquippedClass)
	assert.Equal(t, uint32(26), p.Attack)
}

// ---------- Battle engine ----------

func TestCreateAndJoinBattle(t *testing.T) {
	ct := setupContractTest()
	ctx := context.Background()
	registerAll(t, ct, alice, bob, charlie)

	callContract(t, ct, "b_create", "XOXO", alice, true)
	b := getBattle(t, ct, "XOXO")
	assert.Equal(t, contract.Pending, b.Status)
	assert.Equal(t, [2]sdk.Address{alice, contract.DefaultContractAddress}, b.Seats)
	assert.True(t, getPlayer(t, ct, alice).InBattle)

	assert.Regexp(t, "AR010206", callContract(t, ct, "b_create", "XOXO", bob, false))
	assert.Regexp(t, "AR010202", callContract(t, ct, "b_create", "Second", alice, false))
	assert.Regexp(t, "AR010103", callContract(t, ct, "b_create", "bad name", bob, false))
	assert.Regexp(t, "AR010103", callContract(t, ct, "b_create", strings.Repeat("x", 33), bob, false))
	assert.Regexp(t, "AR010103", callContract(t, ct, "b_create", "", bob, false))
	assert.Regexp(t, "AR010201", callContract(t, ct, "b_create", "Nobody", "hive:nobody", false))

	assert.Regexp(t, "AR010211", callContract(t, ct, "b_join", "XOXO", alice, false))
	assert.Regexp(t, "AR010301", callContract(t, ct, "b_join", "Missing", bob, false))

	callContract(t, ct, "b_join", "XOXO", bob, true)
	b = getBattle(t, ct, "XOXO")
	assert.Equal(t, contract.Started, b.Status)
	assert.Equal(t, [2]sdk.Address{alice, bob}, b.Seats)
	assert.Equal(t, [2]contract.Move{contract.NoMove, contract.NoMove}, b.Moves)
	assert.True(t, getPlayer(t, ct, bob).InBattle)

	// a third player cannot get in and the battle is unchanged
	assert.Regexp(t, "AR010207", callContract(t, ct, "b_join", "XOXO", charlie, false))
	assert.Equal(t, b, getBattle(t, ct, "XOXO"))
	assert.False(t, getPlayer(t, ct, charlie).InBattle)

	names, err := ct.contract.ListBattles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"XOXO"}, names)
}

func TestJoinWhileInAnotherBattle(t *testing.T) {
	ct := setupContractTest()
	registerAll(t, ct, alice, bob)
	callContract(t, ct, "b_create", "one", alice, true)
	callContract(t, ct, "b_create", "two", bob, true)
	assert.Regexp(t, "AR010202", callContract(t, ct, "b_join", "one", bob, false))
	assert.Equal(t, contract.Pending, getBattle(t, ct, "one").Status)
}

func TestPlayBattleToWin(t *testing.T) {
	ct := setupContractTest()
	registerAll(t, ct, alice, bob)
	callContract(t, ct, "equip", "2", alice, true) // 97/26/12
	callContract(t, ct, "b_create", "Duel", alice, true)
	callContract(t, ct, "b_join", "Duel", bob, true)

	wantHealth := [][2]uint32{{87, 74}, {77, 48}, {67, 22}}
	for i, want := range wantHealth {
		callContract(t, ct, "b_move", "Duel|1", alice, true)
		assert.Equal(t, [2]contract.Move{contract.Attack, contract.NoMove}, getBattle(t, ct, "Duel").Moves)
		callContract(t, ct, "b_move", "Duel|1", bob, true)

		b := getBattle(t, ct, "Duel")
		assert.Equal(t, contract.Started, b.Status)
		assert.Equal(t, uint32(i+1), b.Round)
		assert.Equal(t, [2]contract.Move{contract.NoMove, contract.NoMove}, b.Moves)
		assert.Equal(t, want[0], getPlayer(t, ct, alice).Health)
		assert.Equal(t, want[1], getPlayer(t, ct, bob).Health)
	}

	// order of submission does not matter
	callContract(t, ct, "b_move", "Duel|1", bob, true)
	callContract(t, ct, "b_move", "Duel|1", alice, true)

	b := getBattle(t, ct, "Duel")
	assert.Equal(t, contract.Ended, b.Status)
	assert.Equal(t, alice, b.Winner)
	assert.Equal(t, uint32(4), b.Round)

	a, o := getPlayer(t, ct, alice), getPlayer(t, ct, bob)
	assert.False(t, a.InBattle)
	assert.False(t, o.InBattle)
	assert.Equal(t, uint32(100), a.Health)
	assert.Equal(t, uint32(100), o.Health)
	assert.Equal(t, uint32(26), a.Attack) // blade stays equipped

	// ended battles are history
	assert.Regexp(t, "AR010208", callContract(t, ct, "b_move", "Duel|1", alice, false))
	assert.Regexp(t, "AR010206", callContract(t, ct, "b_create", "Duel", alice, false))
	assert.Regexp(t, "AR010207", callContract(t, ct, "b_join", "Duel", alice, false))

	// both are free again
	callContract(t, ct, "unequip", "", alice, true)
	callContract(t, ct, "b_create", "Rematch", bob, true)
	callContract(t, ct, "b_join", "Rematch", alice, true)

	assert.Equal(t, 4, ct.recorder.events[contract.EventRoundResolved])
	assert.Equal(t, 1, ct.recorder.events[contract.EventBattleWon])
}

func TestDefendDefendHealsBoth(t *testing.T) {
	ct := setupContractTest()
	registerAll(t, ct, alice, bob)
	callContract(t, ct, "b_create", "Calm", alice, true)
	callContract(t, ct, "b_join", "Calm", bob, true)

	callContract(t, ct, "b_move", "Calm|2", alice, true)
	callContract(t, ct, "b_move", "Calm|2", bob, true)

	assert.Equal(t, uint32(102), getPlayer(t, ct, alice).Health)
	assert.Equal(t, uint32(102), getPlayer(t, ct, bob).Health)
	b := getBattle(t, ct, "Calm")
	assert.Equal(t, contract.Started, b.Status)
	assert.Equal(t, [2]contract.Move{contract.NoMove, contract.NoMove}, b.Moves)
	assert.Equal(t, uint32(1), b.Round)
}

func TestMoveRules(t *testing.T) {
	ct := setupContractTest()
	registerAll(t, ct, alice, bob, charlie)
	callContract(t, ct, "b_create", "Rules", alice, true)

	assert.Regexp(t, "AR010208", callContract(t, ct, "b_move", "Rules|1", alice, false))
	assert.Regexp(t, "AR010301", callContract(t, ct, "b_move", "Missing|1", alice, false))

	callContract(t, ct, "b_join", "Rules", bob, true)
	assert.Regexp(t, "AR010101", callContract(t, ct, "b_move", "Rules|0", alice, false))
	assert.Regexp(t, "AR010101", callContract(t, ct, "b_move", "Rules|3", alice, false))
	assert.Regexp(t, "AR010209", callContract(t, ct, "b_move", "Rules|1", charlie, false))

	callContract(t, ct, "b_move", "Rules|1", alice, true)
	err := callContract(t, ct, "b_move", "Rules|2", alice, false)
	assert.Regexp(t, "AR010210", err)
	assert.Equal(t, contract.CategoryStateConflict, contract.ErrorCategory(err))
	assert.Equal(t, [2]contract.Move{contract.Attack, contract.NoMove}, getBattle(t, ct, "Rules").Moves)

	// moving for somebody else
	err = ct.contract.SubmitMove(asSender(alice), bob, contract.Defend, "Rules")
	assert.Regexp(t, "AR010000", err)
	assert.Equal(t, [2]contract.Move{contract.Attack, contract.NoMove}, getBattle(t, ct, "Rules").Moves)

	assert.Equal(t, 1, ct.recorder.events[contract.EventMoveSubmitted])
}

func TestAutoBattleAgainstBot(t *testing.T) {
	ct := setupContractTest()
	ctx := context.Background()
	registerAll(t, ct, alice)
	callContract(t, ct, "equip", "2", alice, true)

	callContract(t, ct, "b_create_auto", "Bots", alice, true)
	b := getBattle(t, ct, "Bots")
	assert.Equal(t, contract.Started, b.Status)
	assert.True(t, b.Auto)
	assert.Equal(t, [2]sdk.Address{alice, contract.DefaultBotAddress}, b.Seats)
	assert.True(t, getPlayer(t, ct, alice).InBattle)

	assert.Equal(t, contract.Combatant{Health: 100, Attack: 10, Defense: 10}, b.BotStats)
	lp, err := ct.contract.LookupPlayer(ctx, contract.DefaultBotAddress)
	require.NoError(t, err)
	assert.Nil(t, lp)

	players, err := ct.contract.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []sdk.Address{alice}, players)

	// The bot trades blows until one more hit would finish it, then covers.
	for i := 0; i < 5; i++ {
		callContract(t, ct, "b_move", "Bots|1", alice, true)
	}
	b = getBattle(t, ct, "Bots")
	assert.Equal(t, contract.Ended, b.Status)
	assert.Equal(t, alice, b.Winner)
	assert.Equal(t, uint32(5), b.Round)
	assert.Equal(t, [2]contract.Move{contract.Attack, contract.Defend}, b.Moves)

	assert.False(t, getPlayer(t, ct, alice).InBattle)
	assert.Equal(t, contract.Combatant{Health: 6, Attack: 10, Defense: 10}, b.BotStats)
}

func TestChallengeBot(t *testing.T) {
	bot := sdk.Address("contract:sparring")
	ct := setupContractTest(
		contract.WithBotAddress(bot),
		contract.WithBotStrategy(contract.BotStrategyFunc(func(self, opponent contract.Combatant, round uint32) contract.Move {
			return contract.Defend
		})),
	)
	registerAll(t, ct, alice, bob)
	callContract(t, ct, "b_create", "Spar", alice, true)

	assert.Regexp(t, "AR010212", callContract(t, ct, "b_bot", "Spar", bob, false))
	assert.Regexp(t, "AR010301", callContract(t, ct, "b_bot", "Missing", alice, false))

	callContract(t, ct, "b_bot", "Spar", alice, true)
	b := getBattle(t, ct, "Spar")
	assert.Equal(t, contract.Started, b.Status)
	assert.True(t, b.Auto)
	assert.Equal(t, [2]sdk.Address{alice, bot}, b.Seats)

	assert.Regexp(t, "AR010207", callContract(t, ct, "b_bot", "Spar", alice, false))
	assert.Regexp(t, "AR010207", callContract(t, ct, "b_join", "Spar", bob, false))

	callContract(t, ct, "b_move", "Spar|2", alice, true)
	assert.Equal(t, uint32(102), getPlayer(t, ct, alice).Health)
	assert.Equal(t, uint32(102), getBattle(t, ct, "Spar").BotStats.Health)

	// the bot can sit in more than one battle at a time
	callContract(t, ct, "b_create_auto", "Spar2", bob, true)
	assert.Equal(t, bot, getBattle(t, ct, "Spar2").Seats[1])
	assert.Equal(t, uint32(100), getBattle(t, ct, "Spar2").BotStats.Health)
}

func TestBotBattlesKeepSeparateStats(t *testing.T) {
	ct := setupContractTest(
		contract.WithBotStrategy(contract.BotStrategyFunc(func(self, opponent contract.Combatant, round uint32) contract.Move {
			return contract.Attack
		})),
	)
	registerAll(t, ct, alice, bob)
	callContract(t, ct, "equip", "2", alice, true) // 97/26/12
	callContract(t, ct, "b_create_auto", "A", alice, true)
	callContract(t, ct, "b_create_auto", "B", bob, true)

	for i := 0; i < 3; i++ {
		callContract(t, ct, "b_move", "A|1", alice, true)
	}
	assert.Equal(t, uint32(22), getBattle(t, ct, "A").BotStats.Health)
	assert.Equal(t, uint32(67), getPlayer(t, ct, alice).Health)

	callContract(t, ct, "b_move", "B|1", bob, true)
	assert.Equal(t, uint32(90), getBattle(t, ct, "B").BotStats.Health)
	assert.Equal(t, uint32(90), getPlayer(t, ct, bob).Health)
	assert.Equal(t, uint32(22), getBattle(t, ct, "A").BotStats.Health)

	// alice finishing A leaves B's bot as it was
	callContract(t, ct, "b_move", "A|1", alice, true)
	a := getBattle(t, ct, "A")
	assert.Equal(t, contract.Ended, a.Status)
	assert.Equal(t, alice, a.Winner)
	b := getBattle(t, ct, "B")
	assert.Equal(t, contract.Started, b.Status)
	assert.Equal(t, contract.Combatant{Health: 90, Attack: 10, Defense: 10}, b.BotStats)

	callContract(t, ct, "b_move", "B|1", bob, true)
	assert.Equal(t, uint32(80), getBattle(t, ct, "B").BotStats.Health)
}

func TestFailedCallLeavesNoTrace(t *testing.T) {
	ct := setupContractTest()
	registerAll(t, ct, alice)
	before := ct.store.Keys()

	assert.Regexp(t, "AR010301", callContract(t, ct, "b_join", "x", bob, false))
	assert.Regexp(t, "AR010102", callContract(t, ct, "equip", "7", alice, false))
	assert.Equal(t, before, ct.store.Keys())
	assert.Equal(t, 0, ct.recorder.events[contract.EventBattleJoined])
}
