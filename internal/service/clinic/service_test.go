package clinic

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/domain"
	"github.com/seu-repo/clinic-advisor/internal/mocks"
	"github.com/seu-repo/clinic-advisor/internal/ports"
)

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"openingStatus":        "1–3년",
		"regionCity":           "  서울 마포구 ",
		"regionDong":           "합정동",
		"buildingType":         "상가",
		"specialties":          []string{"근골격·통증", "교통사고"},
		"patientGroup":         "직장인",
		"avgRevenuePerPatient": 45000,
		"revisitRange":         "50–70%",
		"monthlyPatients":      380,
		"nonInsuranceRatio":    35,
		"monthlyRent":          3500000,
		"laborCost":            6000000,
		"otherFixedCost":       1200000,
		"variableCostEstimate": 1800000,
		"includesOwnerSalary":  false,
		"depositAmount":        50000000,
		"keyMoney":             30000000,
		"interiorCost":         60000000,
		"equipmentCost":        40000000,
		"initialStockCost":     5000000,
		"otherInitialCost":     5000000,
		"staffCount":           4,
		"dailyHours":           9,
		"frequentWait":         true,
		"complaintFrequency":   "거의 없음",
		"revenueConcentration": 40,
	}
}

func encode(t *testing.T, body map[string]interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return raw
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	out := make(map[string]string, len(ve.Fields))
	for _, f := range ve.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestDecodeProfile_Valid(t *testing.T) {
	p, err := DecodeProfile(encode(t, validBody()))

	require.NoError(t, err)
	assert.Equal(t, "서울 마포구", p.RegionCity)
	assert.Equal(t, domain.OpeningOneToThree, p.OpeningStatus)
	assert.Equal(t, []domain.Specialty{domain.SpecialtyPain, domain.SpecialtyTraffic}, p.Specialties)
	assert.Equal(t, 380, p.MonthlyPatients)
	assert.True(t, p.FrequentWait)
}

func TestDecodeProfile_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(b map[string]interface{})
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing region",
			mutate:    func(b map[string]interface{}) { delete(b, "regionDong") },
			wantField: "regionDong",
			wantMsg:   "동은(는) 필수 입력입니다",
		},
		{
			name:      "blank region",
			mutate:    func(b map[string]interface{}) { b["regionCity"] = "   " },
			wantField: "regionCity",
			wantMsg:   "필수 입력입니다",
		},
		{
			name:      "unknown building type",
			mutate:    func(b map[string]interface{}) { b["buildingType"] = "오피스텔" },
			wantField: "buildingType",
			wantMsg:   "유효하지 않은 건물 유형입니다",
		},
		{
			name:      "no specialties",
			mutate:    func(b map[string]interface{}) { b["specialties"] = []string{} },
			wantField: "specialties",
			wantMsg:   "최소 1개의 진료 분야를 선택해야 합니다",
		},
		{
			name:      "duplicate specialties",
			mutate:    func(b map[string]interface{}) { b["specialties"] = []string{"교통사고", "교통사고"} },
			wantField: "specialties",
			wantMsg:   "중복된 값",
		},
		{
			name:      "negative rent",
			mutate:    func(b map[string]interface{}) { b["monthlyRent"] = -1 },
			wantField: "monthlyRent",
			wantMsg:   "월 임대료은(는) 0 이상이어야 합니다",
		},
		{
			name:      "ratio above 100",
			mutate:    func(b map[string]interface{}) { b["nonInsuranceRatio"] = 120 },
			wantField: "nonInsuranceRatio",
			wantMsg:   "100 이하여야 합니다",
		},
		{
			name:      "zero daily hours",
			mutate:    func(b map[string]interface{}) { b["dailyHours"] = 0 },
			wantField: "dailyHours",
			wantMsg:   "1 이상이어야 합니다",
		},
		{
			name:      "boolean as string",
			mutate:    func(b map[string]interface{}) { b["frequentWait"] = "yes" },
			wantField: "frequentWait",
			wantMsg:   "형식이 올바르지 않습니다",
		},
		{
			name:      "number as string",
			mutate:    func(b map[string]interface{}) { b["avgRevenuePerPatient"] = "45000" },
			wantField: "avgRevenuePerPatient",
			wantMsg:   "형식이 올바르지 않습니다",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validBody()
			tt.mutate(body)

			_, err := DecodeProfile(encode(t, body))

			fields := fieldsOf(t, err)
			require.Contains(t, fields, tt.wantField)
			assert.Contains(t, fields[tt.wantField], tt.wantMsg)
		})
	}
}

func TestDecodeProfile_ReportsEveryProblem(t *testing.T) {
	body := validBody()
	delete(body, "regionCity")
	body["staffCount"] = -2
	body["revisitRange"] = "90%"

	_, err := DecodeProfile(encode(t, body))

	fields := fieldsOf(t, err)
	assert.Len(t, fields, 3)
	assert.Contains(t, err.Error(), "invalid profile: ")
}

func TestDecodeProfile_NotJSON(t *testing.T) {
	_, err := DecodeProfile([]byte("{"))

	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "(root)")
}

func newService(repo *mocks.MockProfileRepository, q *mocks.MockMessageQueue, now time.Time) *Service {
	s := NewService(repo, q, zap.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func TestService_SaveNewProfile(t *testing.T) {
	// Arrange
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &mocks.MockProfileRepository{}
	q := mocks.NewMockMessageQueue()
	s := newService(repo, q, now)

	// Act
	p, err := s.Save(context.Background(), encode(t, validBody()))

	// Assert
	require.NoError(t, err)
	_, err = uuid.Parse(p.ID)
	assert.NoError(t, err)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
	assert.Equal(t, "서울 마포구", repo.Profile.RegionCity)

	events := q.GetPublishedMessages(ports.SubjectProfileSaved)
	require.Len(t, events, 1)
	var ev ProfileEvent
	require.NoError(t, json.Unmarshal(events[0], &ev))
	assert.Equal(t, p.ID, ev.ID)
}

func TestService_SaveKeepsCreatedAt(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &mocks.MockProfileRepository{Profile: &domain.ClinicProfile{ID: "clinic-1", CreatedAt: created}}
	s := newService(repo, mocks.NewMockMessageQueue(), now)

	body := validBody()
	body["id"] = "clinic-1"
	body["createdAt"] = "2025-05-30T00:00:00Z"

	p, err := s.Save(context.Background(), encode(t, body))

	require.NoError(t, err)
	assert.Equal(t, "clinic-1", p.ID)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestService_SaveUsesSubmittedCreatedAtForNewID(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newService(&mocks.MockProfileRepository{}, mocks.NewMockMessageQueue(), now)

	body := validBody()
	body["createdAt"] = "2025-05-30T00:00:00Z"

	p, err := s.Save(context.Background(), encode(t, body))

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC), p.CreatedAt.UTC())
}

func TestService_SaveInvalidDoesNotTouchStore(t *testing.T) {
	repo := &mocks.MockProfileRepository{
		SaveFunc: func(ctx context.Context, p *domain.ClinicProfile) error {
			t.Fatal("store must not be called")
			return nil
		},
	}
	s := newService(repo, mocks.NewMockMessageQueue(), time.Now())
	body := validBody()
	body["patientGroup"] = "외국인"

	_, err := s.Save(context.Background(), encode(t, body))

	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestService_SaveStoreFailure(t *testing.T) {
	storeErr := errors.New("disk full")
	repo := &mocks.MockProfileRepository{
		SaveFunc: func(ctx context.Context, p *domain.ClinicProfile) error { return storeErr },
	}
	q := mocks.NewMockMessageQueue()
	s := newService(repo, q, time.Now())

	_, err := s.Save(context.Background(), encode(t, validBody()))

	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, q.GetPublishedMessages(ports.SubjectProfileSaved))
}

func TestService_PublishFailureIsNotFatal(t *testing.T) {
	q := mocks.NewMockMessageQueue()
	q.PublishFunc = func(subject string, data []byte) error { return errors.New("nats down") }
	s := newService(&mocks.MockProfileRepository{}, q, time.Now())

	_, err := s.Save(context.Background(), encode(t, validBody()))
	assert.NoError(t, err)

	assert.NoError(t, s.Delete(context.Background()))
}

func TestService_CurrentAndDelete(t *testing.T) {
	repo := &mocks.MockProfileRepository{}
	q := mocks.NewMockMessageQueue()
	s := newService(repo, q, time.Now())
	ctx := context.Background()

	p, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = s.Save(ctx, encode(t, validBody()))
	require.NoError(t, err)

	p, err = s.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)

	require.NoError(t, s.Delete(ctx))
	p, err = s.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Len(t, q.GetPublishedMessages(ports.SubjectProfileDeleted), 1)
}
