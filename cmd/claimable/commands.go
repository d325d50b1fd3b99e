package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nspcc-dev/claimable-contract/contracts"
	"github.com/nspcc-dev/claimable-contract/deploy"
	"github.com/nspcc-dev/claimable-contract/dump"
	"github.com/nspcc-dev/claimable-contract/rpc/claimable"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// dumpName is the name of the contract in dumps made by the tool.
const dumpName = "claimable"

// session is the state shared by commands talking to the network.
type session struct {
	cfg *config
	log *zap.Logger
	b   *remoteBlockchain
	// Zero if the contract is not configured.
	contract util.Uint160
}

// openSession loads config and dials the RPC server. Account is opened only
// if signing is true.
func openSession(c *cli.Context, signing bool) (*session, error) {
	cfg, l, err := setup(c)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, log: l}

	if cfg.Contract != "" {
		s.contract, err = parseAccount(cfg.Contract)
		if err != nil {
			return nil, fmt.Errorf("contract: %w", err)
		}
	}

	var acc *wallet.Account
	if signing {
		a, err := openAccount(cfg)
		if err != nil {
			return nil, err
		}
		acc = a
	}

	s.b, err = newRemoteBlockchain(cfg, acc)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *session) close() {
	s.b.close()
	_ = s.log.Sync()
}

func (s *session) requireContract() (util.Uint160, error) {
	if s.contract.Equals(util.Uint160{}) {
		return s.contract, errors.New("missing contract address")
	}
	return s.contract, nil
}

func (s *session) waitContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.cfg.WaitTimeout)
}

func tokenArg(c *cli.Context) (util.Uint160, error) {
	v := c.String(tokenFlag)
	if v == "" {
		return util.Uint160{}, errors.New("missing token")
	}
	h, err := parseAccount(v)
	if err != nil {
		return h, fmt.Errorf("token: %w", err)
	}
	return h, nil
}

func deployCmd(c *cli.Context) error {
	ctr, err := contracts.ReadDir(c.String(inFlag))
	if err != nil {
		return fmt.Errorf("read compiled contract: %w", err)
	}

	s, err := openSession(c, true)
	if err != nil {
		return err
	}
	defer s.close()

	admin := s.b.actor.Sender()
	if v := c.String(adminFlag); v != "" {
		admin, err = parseAccount(v)
		if err != nil {
			return fmt.Errorf("admin: %w", err)
		}
	}

	ctx, cancel := s.waitContext()
	defer cancel()

	h, err := deploy.Deploy(ctx, deploy.Prm{
		Logger:       s.log,
		Blockchain:   s.b.rpc,
		Actor:        s.b.actor,
		NEF:          ctr.NEF,
		Manifest:     ctr.Manifest,
		Admin:        admin,
		BlocksPerDay: c.Int(blocksPerDayFlag),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "%s (%s)\n", address.Uint160ToString(h), h.StringLE())

	return nil
}

func depositCmd(c *cli.Context) error {
	token, err := tokenArg(c)
	if err != nil {
		return err
	}

	claimants, err := parseClaimants(c.Args())
	if err != nil {
		return err
	}

	s, err := openSession(c, true)
	if err != nil {
		return err
	}
	defer s.close()

	h, err := s.requireContract()
	if err != nil {
		return err
	}

	txHash, vub, err := claimable.New(s.b.actor, h).Deposit(s.b.actor.Sender(), token, claimants)
	if err != nil {
		return fmt.Errorf("send deposit: %w", err)
	}

	s.log.Info("deposit sent, waiting...", zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	ctx, cancel := s.waitContext()
	defer cancel()

	log, err := s.b.waitTx(ctx, txHash, vub)
	if err != nil {
		return err
	}

	evs, err := claimable.DepositEventsFromApplicationLog(log)
	if err != nil {
		return fmt.Errorf("parse deposit events: %w", err)
	}

	for _, ev := range evs {
		s.log.Info("deposit accepted",
			zap.Stringer("token", ev.Token),
			zap.String("from", address.Uint160ToString(ev.From)),
			zap.Stringer("amount", ev.Amount))
	}

	return nil
}

func claimCmd(c *cli.Context) error {
	token, err := tokenArg(c)
	if err != nil {
		return err
	}

	s, err := openSession(c, true)
	if err != nil {
		return err
	}
	defer s.close()

	h, err := s.requireContract()
	if err != nil {
		return err
	}

	txHash, vub, err := claimable.New(s.b.actor, h).Claim(s.b.actor.Sender(), token)
	if err != nil {
		return fmt.Errorf("send claim: %w", err)
	}

	s.log.Info("claim sent, waiting...", zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	ctx, cancel := s.waitContext()
	defer cancel()

	log, err := s.b.waitTx(ctx, txHash, vub)
	if err != nil {
		return err
	}

	evs, err := claimable.ClaimEventsFromApplicationLog(log)
	if err != nil {
		return fmt.Errorf("parse claim events: %w", err)
	}

	for _, ev := range evs {
		fmt.Fprintf(c.App.Writer, "claimed %s of %s\n", ev.Amount, ev.Token.StringLE())
	}

	return nil
}

func balanceCmd(c *cli.Context) error {
	s, err := openSession(c, false)
	if err != nil {
		return err
	}
	defer s.close()

	h, err := s.requireContract()
	if err != nil {
		return err
	}

	r := claimable.NewReader(s.b.actor, h)

	if c.String(tokenFlag) == "" {
		bs, err := r.Balances()
		if err != nil {
			return fmt.Errorf("list balances: %w", err)
		}
		for i := range bs {
			printBalance(c.App.Writer, bs[i])
		}
		return nil
	}

	token, err := tokenArg(c)
	if err != nil {
		return err
	}

	b, err := r.GetBalance(token)
	if err != nil {
		return fmt.Errorf("get balance: %w", err)
	}

	printBalance(c.App.Writer, b)

	return nil
}

func printBalance(w io.Writer, b *claimable.ClaimableBalance) {
	fmt.Fprintf(w, "token %s: total %s, remaining %s\n", b.Token.StringLE(), b.TotalAmount, b.Remaining())
	for _, cl := range b.Claimants {
		fmt.Fprintf(w, "\t%s\t%s\n", address.Uint160ToString(cl.Claimant), cl.Amount)
	}
}

func ttlCmd(c *cli.Context) error {
	s, err := openSession(c, c.Bool(extendFlag))
	if err != nil {
		return err
	}
	defer s.close()

	h, err := s.requireContract()
	if err != nil {
		return err
	}

	ctr := claimable.New(s.b.actor, h)

	if c.Bool(extendFlag) {
		txHash, vub, err := ctr.ExtendTTL()
		if err != nil {
			return fmt.Errorf("send TTL extension: %w", err)
		}

		ctx, cancel := s.waitContext()
		defer cancel()

		_, err = s.b.waitTx(ctx, txHash, vub)
		if err != nil {
			return err
		}
	}

	ttl, err := ctr.GetTTL()
	if err != nil {
		return fmt.Errorf("get TTL: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "%s blocks\n", ttl)

	return nil
}

func dumpCmd(c *cli.Context) error {
	label := c.String(labelFlag)
	if label == "" {
		return errors.New("missing blockchain label")
	}

	dir := c.String(dirFlag)

	err := os.MkdirAll(dir, 0700)
	if err != nil {
		return fmt.Errorf("create root dir: %w", err)
	}

	s, err := openSession(c, false)
	if err != nil {
		return err
	}
	defer s.close()

	h, err := s.requireContract()
	if err != nil {
		return err
	}

	ctr, err := s.b.contractState(h)
	if err != nil {
		return err
	}

	// storage items are collected first since the dump ID needs the height
	var items [][2][]byte

	height, err := s.b.iterateContractStorage(h, func(key, value []byte) error {
		items = append(items, [2][]byte{key, value})
		return nil
	})
	if err != nil {
		return fmt.Errorf("iterate contract storage: %w", err)
	}

	d, err := dump.NewCreator(dir, dump.ID{Label: label, Block: height})
	if err != nil {
		return fmt.Errorf("init local dumper: %w", err)
	}
	defer d.Close()

	w := d.AddContract(dumpName, ctr)
	for i := range items {
		err = w.Write(items[i][0], items[i][1])
		if err != nil {
			return err
		}
	}

	err = d.Flush()
	if err != nil {
		return fmt.Errorf("flush dump: %w", err)
	}

	s.log.Info("contract state dumped", zap.String("dir", dir), zap.Uint32("block", height), zap.Int("items", len(items)))

	return nil
}

func inspectCmd(c *cli.Context) error {
	return inspectDumps(c.App.Writer, c.String(dirFlag))
}

// inspectDumps prints decoded states of all dumps in dir.
func inspectDumps(w io.Writer, dir string) error {
	var decodeErr error

	err := dump.IterateDumps(dir, func(id dump.ID, r *dump.Reader) {
		if decodeErr != nil {
			return
		}

		st, err := dump.DecodeState(r, dumpName)
		if err != nil {
			decodeErr = fmt.Errorf("dump %s: %w", id, err)
			return
		}

		fmt.Fprintf(w, "%s: admin %s, blocks per day %d, horizon %d\n",
			id, address.Uint160ToString(st.Admin), st.BlocksPerDay, st.Horizon)
		for i := range st.Balances {
			printBalance(w, st.Balances[i])
		}
	})
	if err != nil {
		return err
	}

	return decodeErr
}
