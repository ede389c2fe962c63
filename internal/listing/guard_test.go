package listing_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/list-files/internal/listing"
	"github.com/joe/list-files/pkg/filesystem"
)

func TestCycleGuard_RejectsActiveAncestor(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	guard := listing.NewCycleGuard()
	id := listing.DeviceInode{Device: 1, Inode: 10}

	g.Expect(guard.Enter(id)).To(BeTrue())
	g.Expect(guard.Enter(id)).To(BeFalse())
	g.Expect(guard.Depth()).To(Equal(1))

	guard.Pop()
	g.Expect(guard.Contains(id)).To(BeFalse())
	g.Expect(guard.Enter(id)).To(BeTrue())
}

func TestCycleGuard_IdentityUsesBothFields(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	guard := listing.NewCycleGuard()

	g.Expect(guard.Enter(listing.DeviceInode{Device: 1, Inode: 10})).To(BeTrue())
	g.Expect(guard.Enter(listing.DeviceInode{Device: 2, Inode: 10})).To(BeTrue())
	g.Expect(guard.Enter(listing.DeviceInode{Device: 1, Inode: 11})).To(BeTrue())
	g.Expect(guard.Depth()).To(Equal(3))
}

func TestCycleGuard_PopRemovesInnermost(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	guard := listing.NewCycleGuard()
	outer := listing.DeviceInode{Device: 1, Inode: 1}
	inner := listing.DeviceInode{Device: 1, Inode: 2}

	guard.Push(outer)
	guard.Push(inner)
	guard.Pop()

	g.Expect(guard.Contains(inner)).To(BeFalse())
	g.Expect(guard.Contains(outer)).To(BeTrue())

	guard.Pop()
	guard.Pop()
	g.Expect(guard.Depth()).To(BeZero())
}

func TestCycleGuard_DuplicatePushNeedsTwoPops(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	guard := listing.NewCycleGuard()
	id := listing.DeviceInode{Device: 3, Inode: 3}

	guard.Push(id)
	guard.Push(id)
	guard.Pop()
	g.Expect(guard.Contains(id)).To(BeTrue())

	guard.Pop()
	g.Expect(guard.Contains(id)).To(BeFalse())
}

func TestIdentityOf(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	id := listing.IdentityOf(&filesystem.Metadata{Device: 7, Inode: 9})
	g.Expect(id).To(Equal(listing.DeviceInode{Device: 7, Inode: 9}))
}
