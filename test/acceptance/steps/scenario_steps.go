// Package steps wires the Gherkin scenarios under test/acceptance/features
// directly onto the optimizer package, the way contract_steps.go wires
// gobot's BDD scenarios onto its domain services.
package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/blocksolve/blocksolve/internal/blockerr"
	"github.com/blocksolve/blocksolve/internal/optimizer"
)

type optimizerContext struct {
	catalog  optimizer.Catalog
	capacity int

	result      *optimizer.SingleBlockResult
	multiResult *optimizer.MultiBlockResult
	err         error
}

func (c *optimizerContext) reset(*godog.Scenario) {
	c.catalog = optimizer.Catalog{BuildingTypes: map[string]map[string]optimizer.BuildingDefinition{}}
	c.capacity = 0
	c.result = nil
	c.multiResult = nil
	c.err = nil
}

func fPtr(v float64) *float64 { return &v }
func iPtr(v int) *int         { return &v }

func (c *optimizerContext) building(typeName, name string, def optimizer.BuildingDefinition) {
	if c.catalog.BuildingTypes[typeName] == nil {
		c.catalog.BuildingTypes[typeName] = map[string]optimizer.BuildingDefinition{}
	}
	c.catalog.BuildingTypes[typeName][name] = def
}

func (c *optimizerContext) anEmptyCatalog() error {
	return nil
}

func (c *optimizerContext) aBlockCapacityOf(capacity int) error {
	c.capacity = capacity
	return nil
}

func (c *optimizerContext) oneNeutralVariant(name string, size, income int) error {
	c.building("misc", name, optimizer.BuildingDefinition{
		BaseIncome: fPtr(float64(income)),
		Size:       iPtr(size),
	})
	return nil
}

func (c *optimizerContext) oneHouse(name string, capacity, income, size int) error {
	c.building("house", name, optimizer.BuildingDefinition{
		PeopleCapacity: iPtr(capacity),
		BaseIncome:     fPtr(float64(income)),
		Size:           iPtr(size),
	})
	return nil
}

func (c *optimizerContext) oneHousePreferring(name string, capacity, income, size int, prefers string) error {
	c.building("house", name, optimizer.BuildingDefinition{
		PeopleCapacity: iPtr(capacity),
		BaseIncome:     fPtr(float64(income)),
		Size:           iPtr(size),
		Prefers:        []string{prefers},
	})
	return nil
}

func (c *optimizerContext) businessNoPreference(name string, capacity, income, size int) error {
	c.building("business", name, optimizer.BuildingDefinition{
		Employees:  iPtr(capacity),
		BaseIncome: fPtr(float64(income)),
		Size:       iPtr(size),
	})
	return nil
}

func (c *optimizerContext) mandatoryMiscItems(first, second string, size, income int) error {
	def := optimizer.BuildingDefinition{
		BaseIncome: fPtr(float64(income)),
		Size:       iPtr(size),
		Mandatory:  true,
	}
	c.building("misc", first, def)
	c.building("misc", second, def)
	return nil
}

func (c *optimizerContext) mandatoryMiscItem(name string, size, income int) error {
	c.building("misc", name, optimizer.BuildingDefinition{
		BaseIncome: fPtr(float64(income)),
		Size:       iPtr(size),
		Mandatory:  true,
	})
	return nil
}

func (c *optimizerContext) iSolveASingleBlock() error {
	c.result, c.err = optimizer.Optimize(c.catalog, c.capacity, optimizer.Options{})
	return nil
}

func (c *optimizerContext) iPlanBlocks(n int) error {
	c.multiResult, c.err = optimizer.OptimizeMultipleBlocks(c.catalog, n, c.capacity, optimizer.Options{})
	return c.err
}

func (c *optimizerContext) theCombinationShouldBeEmpty() error {
	if c.err != nil {
		return fmt.Errorf("solve failed: %w", c.err)
	}
	if len(c.result.Combination) != 0 {
		return fmt.Errorf("combination = %+v, want empty", c.result.Combination)
	}
	return nil
}

func (c *optimizerContext) theTotalIncomeShouldBe(income int64) error {
	if c.err != nil {
		return fmt.Errorf("solve failed: %w", c.err)
	}
	if c.result.TotalIncome != income {
		return fmt.Errorf("totalIncome = %d, want %d", c.result.TotalIncome, income)
	}
	return nil
}

func findItem(items []optimizer.CombinationItem, name string) (optimizer.CombinationItem, bool) {
	for _, item := range items {
		if item.Name == name {
			return item, true
		}
	}
	return optimizer.CombinationItem{}, false
}

func (c *optimizerContext) theCombinationShouldContainWithCount(name string, count int) error {
	if c.err != nil {
		return fmt.Errorf("solve failed: %w", c.err)
	}
	item, ok := findItem(c.result.Combination, name)
	if !ok {
		return fmt.Errorf("combination does not contain %q: %+v", name, c.result.Combination)
	}
	if item.Count != count {
		return fmt.Errorf("count for %q = %d, want %d", name, item.Count, count)
	}
	return nil
}

func (c *optimizerContext) theCombinationShouldNotContain(name string) error {
	if c.err != nil {
		return fmt.Errorf("solve failed: %w", c.err)
	}
	if _, ok := findItem(c.result.Combination, name); ok {
		return fmt.Errorf("combination unexpectedly contains %q: %+v", name, c.result.Combination)
	}
	return nil
}

func (c *optimizerContext) theEfficiencyForShouldBe(name, efficiency string) error {
	if c.err != nil {
		return fmt.Errorf("solve failed: %w", c.err)
	}
	got := c.result.AverageEfficiencyByType[name]
	if got != efficiency {
		return fmt.Errorf("efficiency[%q] = %q, want %q", name, got, efficiency)
	}
	return nil
}

func (c *optimizerContext) theSolveShouldReportNoSolution() error {
	if !errors.Is(c.err, blockerr.ErrNoSolution) {
		return fmt.Errorf("err = %v, want ErrNoSolution", c.err)
	}
	return nil
}

func (c *optimizerContext) blockN(n int) (optimizer.BlockResult, error) {
	if c.err != nil {
		return optimizer.BlockResult{}, fmt.Errorf("plan failed: %w", c.err)
	}
	for _, b := range c.multiResult.Blocks {
		if b.BlockNumber == n {
			return b, nil
		}
	}
	return optimizer.BlockResult{}, fmt.Errorf("no block numbered %d in %+v", n, c.multiResult.Blocks)
}

func (c *optimizerContext) blockShouldNotContain(n int, name string) error {
	block, err := c.blockN(n)
	if err != nil {
		return err
	}
	if _, ok := findItem(block.Combination, name); ok {
		return fmt.Errorf("block %d unexpectedly contains %q: %+v", n, name, block.Combination)
	}
	return nil
}

func (c *optimizerContext) blockShouldContainWithCount(n int, name string, count int) error {
	block, err := c.blockN(n)
	if err != nil {
		return err
	}
	item, ok := findItem(block.Combination, name)
	if !ok {
		return fmt.Errorf("block %d does not contain %q: %+v", n, name, block.Combination)
	}
	if item.Count != count {
		return fmt.Errorf("count for %q in block %d = %d, want %d", name, n, item.Count, count)
	}
	return nil
}

// InitializeScenario registers every step definition used by the feature
// files under test/acceptance/features.
func InitializeScenario(sc *godog.ScenarioContext) {
	ctx := &optimizerContext{}
	sc.Before(func(gCtx context.Context, s *godog.Scenario) (context.Context, error) {
		ctx.reset(s)
		return gCtx, nil
	})

	sc.Step(`^an empty catalog$`, ctx.anEmptyCatalog)
	sc.Step(`^a block capacity of (\d+)$`, ctx.aBlockCapacityOf)
	sc.Step(`^a catalog with one neutral variant "([^"]+)" of size (\d+) and income (\d+)$`, ctx.oneNeutralVariant)
	sc.Step(`^a catalog with one house "([^"]+)" of capacity (\d+), income (\d+), size (\d+)$`, ctx.oneHouse)
	sc.Step(`^a catalog with one house "([^"]+)" of capacity (\d+), income (\d+), size (\d+) preferring "([^"]+)"$`, ctx.oneHousePreferring)
	sc.Step(`^a business "([^"]+)" of capacity (\d+), income (\d+), size (\d+), no preference$`, ctx.businessNoPreference)
	sc.Step(`^a catalog with mandatory misc items "([^"]+)" and "([^"]+)" each of size (\d+) and income (\d+)$`, ctx.mandatoryMiscItems)
	sc.Step(`^a catalog with a mandatory misc item "([^"]+)" of size (\d+) and income (\d+)$`, ctx.mandatoryMiscItem)
	sc.Step(`^I solve a single block$`, ctx.iSolveASingleBlock)
	sc.Step(`^I plan (\d+) blocks$`, ctx.iPlanBlocks)
	sc.Step(`^the combination should be empty$`, ctx.theCombinationShouldBeEmpty)
	sc.Step(`^the total income should be (\d+)$`, ctx.theTotalIncomeShouldBe)
	sc.Step(`^the combination should contain "([^"]+)" with count (\d+)$`, ctx.theCombinationShouldContainWithCount)
	sc.Step(`^the combination should not contain "([^"]+)"$`, ctx.theCombinationShouldNotContain)
	sc.Step(`^the efficiency for "([^"]+)" should be "([^"]+)"$`, ctx.theEfficiencyForShouldBe)
	sc.Step(`^the solve should report no solution$`, ctx.theSolveShouldReportNoSolution)
	sc.Step(`^block (\d+) should not contain "([^"]+)"$`, ctx.blockShouldNotContain)
	sc.Step(`^block (\d+) should contain "([^"]+)" with count (\d+)$`, ctx.blockShouldContainWithCount)
}
