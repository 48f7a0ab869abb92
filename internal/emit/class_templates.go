package emit

import "text/template"

// Class templates. Each generated class embeds its data in the
// constructor - the self-initializing constructor is what keeps generated
// worlds free of runtime file loads.

var baseNPCHeaderTpl = template.Must(template.New("base_npc_h").Parse(`#pragma once

#include "CoreMinimal.h"
#include "GameFramework/Character.h"
#include "Components/SphereComponent.h"
#include "{{.World}}BaseNPC.generated.h"

UENUM(BlueprintType)
enum class E{{.World}}NPCRole : uint8
{
    Friendly UMETA(DisplayName = "Friendly"),
    Neutral UMETA(DisplayName = "Neutral"),
    Hostile UMETA(DisplayName = "Hostile")
};

USTRUCT(BlueprintType)
struct F{{.World}}NPCStats
{
    GENERATED_BODY()

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "Stats")
    int32 Health = 100;

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "Stats")
    int32 Attack = 10;

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "Stats")
    int32 Defense = 5;
};

UCLASS(Abstract, BlueprintType, Blueprintable)
class {{.API}} A{{.World}}BaseNPC : public ACharacter
{
    GENERATED_BODY()

public:
    A{{.World}}BaseNPC();

protected:
    virtual void BeginPlay() override;

    UPROPERTY(VisibleAnywhere, BlueprintReadOnly, Category = "Components")
    class USphereComponent* InteractionSphere;

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "NPC")
    FString NPCName;

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "NPC")
    E{{.World}}NPCRole Role = E{{.World}}NPCRole::Friendly;

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "NPC")
    TArray<FString> DialogueLines;

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "NPC")
    F{{.World}}NPCStats Stats;

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "NPC")
    TArray<FString> Inventory;

    UPROPERTY(VisibleAnywhere, BlueprintReadOnly, Category = "NPC")
    int32 CurrentDialogueIndex = 0;

    UPROPERTY(VisibleAnywhere, BlueprintReadOnly, Category = "NPC")
    bool bInteracting = false;

public:
    UFUNCTION(BlueprintCallable, Category = "NPC")
    FString GetCurrentDialogue() const;

    UFUNCTION(BlueprintCallable, Category = "NPC")
    FString GetNextDialogue();

    UFUNCTION(BlueprintCallable, Category = "NPC")
    bool HasMoreDialogue() const;

    UFUNCTION(BlueprintCallable, Category = "NPC")
    void ResetDialogue();

    UFUNCTION(BlueprintCallable, Category = "NPC")
    void StartInteraction(AActor* InteractingActor);

    UFUNCTION(BlueprintCallable, Category = "NPC")
    void EndInteraction();

    UFUNCTION(BlueprintImplementableEvent, Category = "NPC")
    void OnInteractionStarted(AActor* InteractingActor);

    UFUNCTION(BlueprintImplementableEvent, Category = "NPC")
    void OnInteractionEnded();
};
`))

var baseNPCSourceTpl = template.Must(template.New("base_npc_cpp").Parse(`#include "{{.World}}BaseNPC.h"
#include "Components/SphereComponent.h"

A{{.World}}BaseNPC::A{{.World}}BaseNPC()
{
    PrimaryActorTick.bCanEverTick = false;

    InteractionSphere = CreateDefaultSubobject<USphereComponent>(TEXT("InteractionSphere"));
    InteractionSphere->SetupAttachment(RootComponent);
    InteractionSphere->SetCollisionEnabled(ECollisionEnabled::QueryOnly);
    InteractionSphere->SetCollisionResponseToAllChannels(ECR_Ignore);
    InteractionSphere->SetCollisionResponseToChannel(ECC_Pawn, ECR_Overlap);
}

void A{{.World}}BaseNPC::BeginPlay()
{
    Super::BeginPlay();
}

FString A{{.World}}BaseNPC::GetCurrentDialogue() const
{
    if (DialogueLines.IsValidIndex(CurrentDialogueIndex))
    {
        return DialogueLines[CurrentDialogueIndex];
    }
    return TEXT("...");
}

FString A{{.World}}BaseNPC::GetNextDialogue()
{
    if (HasMoreDialogue())
    {
        CurrentDialogueIndex++;
    }
    return GetCurrentDialogue();
}

bool A{{.World}}BaseNPC::HasMoreDialogue() const
{
    return CurrentDialogueIndex < DialogueLines.Num() - 1;
}

void A{{.World}}BaseNPC::ResetDialogue()
{
    CurrentDialogueIndex = 0;
}

void A{{.World}}BaseNPC::StartInteraction(AActor* InteractingActor)
{
    if (!bInteracting)
    {
        bInteracting = true;
        ResetDialogue();
        OnInteractionStarted(InteractingActor);
    }
}

void A{{.World}}BaseNPC::EndInteraction()
{
    if (bInteracting)
    {
        bInteracting = false;
        OnInteractionEnded();
    }
}
`))

var npcHeaderTpl = template.Must(template.New("npc_h").Parse(`#pragma once

#include "CoreMinimal.h"
#include "{{.World}}BaseNPC.h"
#include "{{.Class}}.generated.h"

UCLASS(BlueprintType, Blueprintable)
class {{.API}} A{{.Class}} : public A{{.Base}}
{
    GENERATED_BODY()

public:
    A{{.Class}}();

    UPROPERTY(EditAnywhere, BlueprintReadOnly, Category = "NPC")
    float InteractionRadius = {{printf "%.1f" .Traits.InteractionRadius}}f;

    UPROPERTY(EditAnywhere, BlueprintReadOnly, Category = "NPC")
    bool bAggressive = {{if .Traits.Aggressive}}true{{else}}false{{end}};

    UFUNCTION(BlueprintCallable, Category = "NPC")
    FVector GetSpawnLocation() const;
};
`))

var npcSourceTpl = template.Must(template.New("npc_cpp").Parse(`#include "{{.Class}}.h"
#include "Components/SphereComponent.h"

A{{.Class}}::A{{.Class}}()
{
    NPCName = TEXT("{{.Name}}");
    Role = E{{.World}}NPCRole::{{.RoleEnum}};

    Stats.Health = {{.Health}};
    Stats.Attack = {{.Attack}};
    Stats.Defense = {{.Defense}};

    DialogueLines.Empty();
{{- range .Dialogue}}
    DialogueLines.Add(TEXT("{{.}}"));
{{- end}}
{{- if .Inventory}}

    Inventory.Empty();
{{- range .Inventory}}
    Inventory.Add(TEXT("{{.}}"));
{{- end}}
{{- end}}

    InteractionSphere->SetSphereRadius(InteractionRadius);
}

FVector A{{.Class}}::GetSpawnLocation() const
{
    return FVector({{printf "%.1f" .Position.X}}f, {{printf "%.1f" .Position.Y}}f, {{printf "%.1f" .Position.Z}}f);
}
`))

var questManagerHeaderTpl = template.Must(template.New("quest_mgr_h").Parse(`#pragma once

#include "CoreMinimal.h"
#include "GameFramework/Actor.h"
#include "{{.Class}}.generated.h"

USTRUCT(BlueprintType)
struct F{{.World}}QuestData
{
    GENERATED_BODY()

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "Quest")
    FString QuestName;

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "Quest")
    FString Description;

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "Quest")
    TArray<FString> Objectives;

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "Quest")
    TArray<FString> Rewards;

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "Quest")
    bool bActive = false;

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "Quest")
    bool bCompleted = false;
};

UCLASS(BlueprintType, Blueprintable)
class {{.API}} A{{.Class}} : public AActor
{
    GENERATED_BODY()

public:
    A{{.Class}}();

    UPROPERTY(EditAnywhere, BlueprintReadOnly, Category = "Quests")
    TArray<F{{.World}}QuestData> AllQuests;

    UFUNCTION(BlueprintCallable, Category = "Quests")
    bool StartQuest(const FString& QuestName);

    UFUNCTION(BlueprintCallable, Category = "Quests")
    bool CompleteQuest(const FString& QuestName);

    UFUNCTION(BlueprintCallable, Category = "Quests")
    int32 GetActiveQuestCount() const;
};
`))

var questManagerSourceTpl = template.Must(template.New("quest_mgr_cpp").Parse(`#include "{{.Class}}.h"

A{{.Class}}::A{{.Class}}()
{
    PrimaryActorTick.bCanEverTick = false;

    AllQuests.Empty();
{{- range $i, $q := .Quests}}
    {
        F{{$.World}}QuestData Quest;
        Quest.QuestName = TEXT("{{$q.Name}}");
        Quest.Description = TEXT("{{$q.Description}}");
{{- range $q.Objectives}}
        Quest.Objectives.Add(TEXT("{{.}}"));
{{- end}}
{{- range $q.Rewards}}
        Quest.Rewards.Add(TEXT("{{.}}"));
{{- end}}
        AllQuests.Add(Quest);
    }
{{- end}}
}

bool A{{.Class}}::StartQuest(const FString& QuestName)
{
    for (F{{.World}}QuestData& Quest : AllQuests)
    {
        if (Quest.QuestName == QuestName && !Quest.bCompleted)
        {
            Quest.bActive = true;
            return true;
        }
    }
    return false;
}

bool A{{.Class}}::CompleteQuest(const FString& QuestName)
{
    for (F{{.World}}QuestData& Quest : AllQuests)
    {
        if (Quest.QuestName == QuestName && Quest.bActive)
        {
            Quest.bActive = false;
            Quest.bCompleted = true;
            return true;
        }
    }
    return false;
}

int32 A{{.Class}}::GetActiveQuestCount() const
{
    int32 Count = 0;
    for (const F{{.World}}QuestData& Quest : AllQuests)
    {
        if (Quest.bActive)
        {
            Count++;
        }
    }
    return Count;
}
`))

var worldManagerHeaderTpl = template.Must(template.New("world_mgr_h").Parse(`#pragma once

#include "CoreMinimal.h"
#include "GameFramework/Actor.h"
#include "{{.Class}}.generated.h"

UCLASS(BlueprintType, Blueprintable)
class {{.API}} A{{.Class}} : public AActor
{
    GENERATED_BODY()

public:
    A{{.Class}}();

    UPROPERTY(EditAnywhere, BlueprintReadOnly, Category = "World")
    FString WorldName;

    UPROPERTY(EditAnywhere, BlueprintReadOnly, Category = "World")
    FString WorldDescription;

    UPROPERTY(EditAnywhere, BlueprintReadOnly, Category = "World")
    FString Theme;

    UPROPERTY(EditAnywhere, BlueprintReadOnly, Category = "World")
    TArray<FString> NPCClasses;

    UPROPERTY(EditAnywhere, BlueprintReadOnly, Category = "World")
    int32 QuestCount = 0;
};
`))

var worldManagerSourceTpl = template.Must(template.New("world_mgr_cpp").Parse(`#include "{{.Class}}.h"

A{{.Class}}::A{{.Class}}()
{
    PrimaryActorTick.bCanEverTick = false;

    WorldName = TEXT("{{.Name}}");
    WorldDescription = TEXT("{{.Description}}");
    Theme = TEXT("{{.Theme}}");
    QuestCount = {{.QuestCount}};

    NPCClasses.Empty();
{{- range .NPCClasses}}
    NPCClasses.Add(TEXT("{{.}}"));
{{- end}}
}
`))

var environmentHeaderTpl = template.Must(template.New("env_h").Parse(`#pragma once

#include "CoreMinimal.h"
#include "GameFramework/Actor.h"
#include "{{.Class}}.generated.h"

UCLASS(BlueprintType, Blueprintable)
class {{.API}} A{{.Class}} : public AActor
{
    GENERATED_BODY()

public:
    A{{.Class}}();

    UPROPERTY(EditAnywhere, BlueprintReadOnly, Category = "Environment")
    FString Theme;

    UPROPERTY(EditAnywhere, BlueprintReadOnly, Category = "Environment")
    FString Lighting;

    UPROPERTY(EditAnywhere, BlueprintReadOnly, Category = "Environment")
    FString Weather;

    UPROPERTY(EditAnywhere, BlueprintReadOnly, Category = "Environment")
    FString Atmosphere;

    UPROPERTY(EditAnywhere, BlueprintReadOnly, Category = "Environment")
    TArray<FString> Terrain;

    UPROPERTY(EditAnywhere, BlueprintReadOnly, Category = "Environment")
    TArray<FString> AssetRefs;
};
`))

var environmentSourceTpl = template.Must(template.New("env_cpp").Parse(`#include "{{.Class}}.h"

A{{.Class}}::A{{.Class}}()
{
    PrimaryActorTick.bCanEverTick = false;

    Theme = TEXT("{{.Theme}}");
    Lighting = TEXT("{{.Lighting}}");
    Weather = TEXT("{{.Weather}}");
    Atmosphere = TEXT("{{.Atmosphere}}");

    Terrain.Empty();
{{- range .Terrain}}
    Terrain.Add(TEXT("{{.}}"));
{{- end}}

    AssetRefs.Empty();
{{- range .Assets}}
    AssetRefs.Add(TEXT("{{.}}"));
{{- end}}
}
`))

var gameModeHeaderTpl = template.Must(template.New("game_mode_h").Parse(`#pragma once

#include "CoreMinimal.h"
#include "GameFramework/GameModeBase.h"
#include "{{.Class}}.generated.h"

UCLASS(BlueprintType, Blueprintable)
class {{.API}} A{{.Class}} : public AGameModeBase
{
    GENERATED_BODY()

public:
    A{{.Class}}();

protected:
    virtual void BeginPlay() override;
};
`))

var gameModeSourceTpl = template.Must(template.New("game_mode_cpp").Parse(`#include "{{.Class}}.h"
#include "{{.WorldManager}}.h"
#include "{{.QuestManager}}.h"
#include "Engine/World.h"

A{{.Class}}::A{{.Class}}()
{
    PrimaryActorTick.bCanEverTick = false;
}

void A{{.Class}}::BeginPlay()
{
    Super::BeginPlay();

    UWorld* World = GetWorld();
    if (World)
    {
        World->SpawnActor<A{{.WorldManager}}>();
        World->SpawnActor<A{{.QuestManager}}>();
    }
}
`))
